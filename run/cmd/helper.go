package cmd

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	gosm4 "github.com/zhigui-projects/gosm4"
)

var (
	keyHex     string
	blockHex   string
	configPath string
	logLevel   string
)

var flags *pflag.FlagSet

var (
	appConf *gosm4.AppConf
	logger  = zap.NewNop()
)

// InitCmd loads conf/app.yaml and builds the logger. Defaults are used only
// when the file does not exist.
func InitCmd(cmd *cobra.Command, args []string) error {
	conf, err := gosm4.LoadAppConf(path.Join(configPath, "app.yaml"))
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			return err
		}
		conf = gosm4.DefaultAppConf()
	}
	if logLevel != "" {
		conf.Conf.Log.Level = logLevel
	}
	l, lerr := gosm4.NewLogger(conf.Conf.Log)
	if lerr != nil {
		return lerr
	}
	if err != nil {
		l.Debug("using default config", zap.String("path", configPath), zap.Error(err))
	}
	appConf, logger = conf, l
	return nil
}

func init() {
	resetFlags()
}

// Explicitly define a method to facilitate tests
func resetFlags() {
	flags = &pflag.FlagSet{}

	flags.StringVarP(&keyHex, "key", "k", "",
		fmt.Sprint("Hex encoded key, at most 16 bytes"))

	flags.StringVarP(&blockHex, "block", "b", "",
		fmt.Sprint("Hex encoded block"))

	flags.StringVarP(&configPath, "path", "p", "./conf",
		fmt.Sprintf("Path to config files"))

	flags.StringVar(&logLevel, "logLevel", "", "override the configured log level")
}

func attachFlags(cmd *cobra.Command, names []string) {
	cmdFlags := cmd.Flags()
	for _, name := range names {
		if flag := flags.Lookup(name); flag != nil {
			cmdFlags.AddFlag(flag)
		} else {
			panic(fmt.Sprint("Could not find flag  to attach to command", "flag", name, "cmd", cmd.Name()))
		}
	}
}

func checkKeyParam() error {
	keyHex = strings.TrimSpace(keyHex)
	if keyHex == "" {
		return errors.New("the required parameter 'key' is empty")
	}
	return nil
}

func checkCryptParams(cmd *cobra.Command) error {
	if err := checkKeyParam(); err != nil {
		return err
	}

	blockHex = strings.TrimSpace(blockHex)
	if blockHex == "" {
		return errors.Errorf("must provide a block to %s", cmd.Name())
	}

	return nil
}
