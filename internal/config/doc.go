// Package config loads the ocypode.toml configuration.
//
// Every key is optional; missing keys keep the defaults from New.
//
// # Configuration File Structure
//
//	role = "server"          # default codec role: server or client
//
//	[limits]
//	max_frame_size = 1048576 # 0 disables the limit
//	lenient = false          # ignore the declared remaining length
//
//	[log]
//	level = "info"           # debug, info, warn, error
//	format = "text"          # text or json
//
//	[inspect]
//	addr = "127.0.0.1:4280"
//	tracer_name = "ocypode"
//	metrics_namespace = "ocypode"
//
// # Usage
//
//	cfg, err := config.LoadFile("ocypode.toml")
//	if err != nil {
//	    return err
//	}
//	codec, err := protocol.NewCodec(cfg.CodecRole(), protocol.WithLimits(cfg.CodecLimits()))
package config
