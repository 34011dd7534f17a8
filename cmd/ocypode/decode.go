package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ShigekuniWork/ocypode/internal/inspect"
	"github.com/ShigekuniWork/ocypode/pkg/protocol"
	"github.com/spf13/cobra"
)

func decodeCmd(root *rootOptions) *cobra.Command {
	var (
		role    string
		hexData string
		file    string
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode frames into messages",
		Long: `Decode one frame, or a stream of frames with --all, and print the
messages as JSON.

The frame is read from --hex, from the binary file named by --file,
or as hex from standard input.

Examples:
  ocypode decode --hex "50 02 00 07"
  ocypode decode --role client --file info.bin
  ocypode decode --all --file capture.bin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			r := cfg.CodecRole()
			if role != "" {
				if r, err = protocol.ParseRole(role); err != nil {
					return err
				}
			}
			limits := cfg.CodecLimits()
			codec, err := protocol.NewCodec(r, protocol.WithLimits(limits))
			if err != nil {
				return err
			}

			data, err := readInput(cmd.InOrStdin(), hexData, file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !all {
				m, err := codec.Decode(data)
				if err != nil {
					return err
				}
				return printJSON(out, inspect.Describe(m))
			}

			fr := protocol.NewFrameReader(bytes.NewReader(data), codec, limits)
			for i := 0; ; i++ {
				m, err := fr.Next()
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				if err := printJSON(out, inspect.Describe(m)); err != nil {
					return err
				}
			}
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", "", "Decoding role: server or client (default from config)")
	cmd.Flags().StringVar(&hexData, "hex", "", "Frame bytes as hex")
	cmd.Flags().StringVarP(&file, "file", "f", "", "File holding raw frame bytes")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Decode every frame in the input")
	cmd.MarkFlagsMutuallyExclusive("hex", "file")

	return cmd
}

// readInput returns the frame bytes named by the flags, or hex from stdin.
func readInput(stdin io.Reader, hexData, file string) ([]byte, error) {
	switch {
	case hexData != "":
		return inspect.DecodeHex(hexData)
	case file != "":
		return os.ReadFile(file)
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		return inspect.DecodeHex(string(data))
	}
}
