package send

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tbruckner/dMQ/cmd/util"
	"github.com/tbruckner/dMQ/remoting/common"
)

var (
	// SendCmd invokes a single operation against the configured endpoints
	SendCmd = &cobra.Command{
		Use:   "send [body]",
		Short: "Invoke an operation code against the broker cluster",
		Long: util.WrapString("Builds a command with the given operation code, " +
			"optional body and extension fields, sends it to the configured " +
			"endpoints with failover and prints the response."),
		Args:    cobra.MaximumNArgs(1),
		RunE:    run,
		PreRunE: processConfig,
	}
)

func init() {
	SendCmd.Flags().Int32("code", 0, util.WrapString("The operation code of the request"))
	SendCmd.Flags().StringSlice("field", nil, util.WrapString("Extension field as key=value (repeatable)"))
}

func processConfig(cmd *cobra.Command, _ []string) error {
	return util.BindCommandFlags(cmd)
}

func run(cmd *cobra.Command, args []string) error {
	util.InitClientConfig()

	conf := util.GetClientConfig()
	common.InitLoggers(conf.LogLevel)

	t, err := util.GetTransport()
	if err != nil {
		return err
	}
	if err := t.Connect(*conf); err != nil {
		return err
	}
	defer t.Close()

	// Collect extension fields
	fields := make(map[string]any)
	for _, pair := range viper.GetStringSlice("field") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid field %q, expected key=value", pair)
		}
		fields[key] = value
	}

	var body any
	if len(args) == 1 {
		body = []byte(args[0])
	}

	resp, err := t.Invoke(viper.GetInt32("code"), body, fields)
	if err != nil {
		return err
	}

	fmt.Printf("code   : %d\n", resp.Code)
	if resp.Remark != "" {
		fmt.Printf("remark : %s\n", resp.Remark)
	}
	resp.Fields.Range(func(key, value string) bool {
		fmt.Printf("field  : %s=%s\n", key, value)
		return true
	})
	if len(resp.Body) > 0 {
		fmt.Printf("body   : %s\n", string(resp.Body))
	}
	return nil
}
