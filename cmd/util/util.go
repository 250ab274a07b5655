package util

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tbruckner/dMQ/remoting/codec"
	"github.com/tbruckner/dMQ/remoting/common"
	"github.com/tbruckner/dMQ/remoting/transport"
	"github.com/tbruckner/dMQ/remoting/transport/tcp"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupClientFlags adds common broker connection flags to a command
func SetupClientFlags(cmd *cobra.Command) {
	key := "endpoints"
	cmd.PersistentFlags().String(key, "localhost:9876", WrapString("The addresses of the broker endpoints as a comma-separated list"))

	key = "connect-timeout"
	cmd.PersistentFlags().Int(key, common.DefaultConnectTimeoutMs, WrapString("The connect timeout in milliseconds"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The per-request timeout in seconds (0 for none)"))

	key = "access-key"
	cmd.PersistentFlags().String(key, "", WrapString("Access key for the secured deployment mode"))

	key = "secret-key"
	cmd.PersistentFlags().String(key, "", WrapString("Secret key for the secured deployment mode"))

	key = "channel"
	cmd.PersistentFlags().String(key, "", WrapString("Channel identifier for signed requests"))

	key = "write-buffer"
	cmd.PersistentFlags().Int(key, 512, WrapString("The size of the socket write buffer (in KB)"))

	key = "read-buffer"
	cmd.PersistentFlags().Int(key, 512, WrapString("The size of the socket read buffer (in KB)"))

	key = "tcp-nodelay"
	cmd.PersistentFlags().Bool(key, true, WrapString("Whether to enable TCP_NODELAY"))

	key = "tcp-keepalive"
	cmd.PersistentFlags().Int(key, 0, WrapString("The keepalive interval (in seconds)"))

	key = "tcp-linger"
	cmd.PersistentFlags().Int(key, 0, WrapString("The linger time (in seconds)"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "info", WrapString("Log level (debug, info, warn, error)"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("dmq")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() *common.ClientConfig {
	conf := &common.ClientConfig{
		Endpoints:        strings.Split(viper.GetString("endpoints"), ","),
		ConnectTimeoutMs: viper.GetInt("connect-timeout"),
		TimeoutSecond:    viper.GetInt("timeout"),
		LogLevel:         viper.GetString("log-level"),
		Transport: common.TransportConf{
			SocketConf: common.SocketConf{
				WriteBufferSize: viper.GetInt("write-buffer") * 1024,
				ReadBufferSize:  viper.GetInt("read-buffer") * 1024,
			},
			TCPConf: common.TCPConf{
				TCPNoDelay:      viper.GetBool("tcp-nodelay"),
				TCPKeepAliveSec: viper.GetInt("tcp-keepalive"),
				TCPLingerSec:    viper.GetInt("tcp-linger"),
			},
		},
	}

	// Credentials select the secured variant only when configured
	if viper.GetString("access-key") != "" || viper.GetString("secret-key") != "" {
		conf.Credentials = &common.Credentials{
			AccessKey: viper.GetString("access-key"),
			SecretKey: viper.GetString("secret-key"),
			Channel:   viper.GetString("channel"),
		}
	}

	return conf
}

// GetCodec creates a codec based on configuration
func GetCodec() (codec.ICommandCodec, error) {
	switch viper.GetString("codec") {
	case "json":
		return codec.NewJSONCodec(), nil
	case "gob":
		return codec.NewGOBCodec(), nil
	default:
		return nil, fmt.Errorf("invalid codec %s", viper.GetString("codec"))
	}
}

// GetTransport creates a transport based on configuration
func GetTransport() (transport.IBrokerTransport, error) {
	commandCodec, err := GetCodec()
	if err != nil {
		return nil, err
	}
	return tcp.NewTCPTransport(commandCodec), nil
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
