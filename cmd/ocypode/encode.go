package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ShigekuniWork/ocypode/pkg/protocol"
	"github.com/ShigekuniWork/ocypode/pkg/topic"
	"github.com/spf13/cobra"
)

func encodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a message into a frame",
		Long: `Encode a message and print the frame as hex.

INFO and MSG are encoded as the server sends them; CONNECT, PUB,
SUB and UNSUB as the client sends them.

Examples:
  ocypode encode pub --topic sensor/temp --payload 21.5
  ocypode encode sub --filter "sensor/+" --sid sub-1 --queue-group workers
  ocypode encode connect --jwt header.payload.sig`,
	}

	cmd.AddCommand(
		encodeInfoCmd(),
		encodeConnectCmd(),
		encodePubCmd(),
		encodeSubCmd(),
		encodeUnsubCmd(),
		encodeMsgCmd(),
	)
	return cmd
}

// printFrame encodes m for role and prints the frame as hex.
func printFrame(cmd *cobra.Command, role protocol.Role, m protocol.Message) error {
	frame, err := protocol.Encode(role, m)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(frame))
	return nil
}

func encodeInfoCmd() *cobra.Command {
	var (
		info       protocol.Info
		serverID   string
		serverName string
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Encode an INFO frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info.ServerID = []byte(serverID)
			info.ServerName = []byte(serverName)
			return printFrame(cmd, protocol.RoleServer, &info)
		},
	}

	cmd.Flags().Uint8Var(&info.Version, "version", 1, "Protocol version")
	cmd.Flags().Uint32Var(&info.MaxPayload, "max-payload", 1<<20, "Largest payload the server accepts")
	cmd.Flags().StringVar(&serverID, "server-id", "", "Server identifier")
	cmd.Flags().StringVar(&serverName, "server-name", "", "Server name")
	cmd.Flags().BoolVar(&info.AuthRequired, "auth-required", false, "Clients must authenticate")
	cmd.Flags().BoolVar(&info.HeadersSupported, "headers", false, "Server supports headers")

	return cmd
}

func encodeConnectCmd() *cobra.Command {
	var (
		connect  protocol.Connect
		user     string
		password string
		jwt      string
	)

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Encode a CONNECT frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case jwt != "":
				connect.Auth = &protocol.JWTAuth{Token: []byte(jwt)}
			case cmd.Flags().Changed("user"):
				connect.Auth = &protocol.PasswordAuth{Username: []byte(user), Password: []byte(password)}
			}
			return printFrame(cmd, protocol.RoleClient, &connect)
		},
	}

	cmd.Flags().Uint8Var(&connect.Version, "version", 1, "Protocol version")
	cmd.Flags().BoolVar(&connect.Verbose, "verbose", false, "Request an OK for every message")
	cmd.Flags().StringVar(&user, "user", "", "Username for password authentication")
	cmd.Flags().StringVar(&password, "password", "", "Password for password authentication")
	cmd.Flags().StringVar(&jwt, "jwt", "", "Token for JWT authentication")
	cmd.MarkFlagsMutuallyExclusive("jwt", "user")

	return cmd
}

// deliveryFlags are the flags shared by pub and msg.
type deliveryFlags struct {
	topic   string
	replyTo string
	headers []string
	payload string
}

func (f *deliveryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.topic, "topic", "t", "", "Topic to publish on")
	cmd.Flags().StringVar(&f.replyTo, "reply-to", "", "Reply-to topic")
	cmd.Flags().StringArrayVarP(&f.headers, "header", "H", nil, "Header as key=value (repeatable, order kept)")
	cmd.Flags().StringVarP(&f.payload, "payload", "p", "", "Payload")
	_ = cmd.MarkFlagRequired("topic")
}

func (f *deliveryFlags) build() (topic.Topic, *topic.Topic, *protocol.Headers, error) {
	t, err := topic.New(f.topic)
	if err != nil {
		return topic.Topic{}, nil, nil, fmt.Errorf("topic: %w", err)
	}

	var replyTo *topic.Topic
	if f.replyTo != "" {
		r, err := topic.New(f.replyTo)
		if err != nil {
			return topic.Topic{}, nil, nil, fmt.Errorf("reply-to: %w", err)
		}
		replyTo = &r
	}

	var headers *protocol.Headers
	if len(f.headers) > 0 {
		headers = protocol.NewHeaders()
		for _, kv := range f.headers {
			key, value, ok := strings.Cut(kv, "=")
			if !ok {
				return topic.Topic{}, nil, nil, fmt.Errorf("header %q: want key=value", kv)
			}
			headers.AddString(key, value)
		}
	}
	return t, replyTo, headers, nil
}

func encodePubCmd() *cobra.Command {
	var flags deliveryFlags

	cmd := &cobra.Command{
		Use:   "pub",
		Short: "Encode a PUB frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, replyTo, headers, err := flags.build()
			if err != nil {
				return err
			}
			return printFrame(cmd, protocol.RoleClient, &protocol.Pub{
				Topic:   t,
				ReplyTo: replyTo,
				Headers: headers,
				Payload: []byte(flags.payload),
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func encodeMsgCmd() *cobra.Command {
	var (
		flags deliveryFlags
		sid   string
	)

	cmd := &cobra.Command{
		Use:   "msg",
		Short: "Encode a MSG frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, replyTo, headers, err := flags.build()
			if err != nil {
				return err
			}
			return printFrame(cmd, protocol.RoleServer, &protocol.Msg{
				Topic:          t,
				SubscriptionID: []byte(sid),
				ReplyTo:        replyTo,
				Headers:        headers,
				Payload:        []byte(flags.payload),
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&sid, "sid", "", "Subscription id")
	return cmd
}

func encodeSubCmd() *cobra.Command {
	var (
		filter     string
		sid        string
		queueGroup string
	)

	cmd := &cobra.Command{
		Use:   "sub",
		Short: "Encode a SUB frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := topic.NewFilter(filter)
			if err != nil {
				return fmt.Errorf("filter: %w", err)
			}
			sub := &protocol.Sub{Filter: f, SubscriptionID: []byte(sid)}
			if cmd.Flags().Changed("queue-group") {
				sub.QueueGroup = []byte(queueGroup)
			}
			return printFrame(cmd, protocol.RoleClient, sub)
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Topic filter")
	cmd.Flags().StringVar(&sid, "sid", "", "Subscription id")
	cmd.Flags().StringVarP(&queueGroup, "queue-group", "q", "", "Queue group")
	_ = cmd.MarkFlagRequired("filter")
	return cmd
}

func encodeUnsubCmd() *cobra.Command {
	var sid string

	cmd := &cobra.Command{
		Use:   "unsub",
		Short: "Encode an UNSUB frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printFrame(cmd, protocol.RoleClient, &protocol.Unsub{SubscriptionID: []byte(sid)})
		},
	}

	cmd.Flags().StringVar(&sid, "sid", "", "Subscription id")
	return cmd
}
