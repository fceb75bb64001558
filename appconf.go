package gosm4

import (
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "logfmt"
)

func LoadConfigBytesFromFile(filePath string) ([]byte, error) {
	cBytes, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read config file")
	}
	if len(cBytes) == 0 {
		return nil, errors.Errorf("Failed to read config file. File %s is empty", filePath)
	}
	return cBytes, nil
}

// LoadAppConf reads the yaml application config at filePath and fills in
// defaults for everything it leaves out.
func LoadAppConf(filePath string) (*AppConf, error) {
	configBytes, err := LoadConfigBytesFromFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseAppConf(configBytes)
}

func ParseAppConf(configBytes []byte) (*AppConf, error) {
	conf := &AppConf{}
	if err := yaml.Unmarshal(configBytes, conf); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal application config")
	}
	conf.Conf.setDefaults()
	return conf, nil
}

func DefaultAppConf() *AppConf {
	conf := &AppConf{}
	conf.Conf.setDefaults()
	return conf
}

type AppConf struct {
	Conf Application `yaml:"application"`
}

type Application struct {
	Log   LogConf   `yaml:"log"`
	Queue QueueConf `yaml:"queue"`
}

type LogConf struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type QueueConf struct {
	RedisAddr     string        `yaml:"redisAddr"`
	RedisPassword string        `yaml:"redisPassword"`
	RedisDB       int           `yaml:"redisDB"`
	Tag           string        `yaml:"tag"`
	Jobs          string        `yaml:"jobs"`
	Results       string        `yaml:"results"`
	PrefetchLimit int64         `yaml:"prefetchLimit"`
	PollDuration  time.Duration `yaml:"pollDuration"`
}

func (app *Application) setDefaults() {
	if app.Log.Level == "" {
		app.Log.Level = DefaultLogLevel
	}
	if app.Log.Format == "" {
		app.Log.Format = DefaultLogFormat
	}
	q := &app.Queue
	if q.RedisAddr == "" {
		q.RedisAddr = "localhost:6379"
	}
	if q.Tag == "" {
		q.Tag = "gosm4"
	}
	if q.Jobs == "" {
		q.Jobs = "sm4-jobs"
	}
	if q.Results == "" {
		q.Results = "sm4-results"
	}
	if q.PrefetchLimit <= 0 {
		q.PrefetchLimit = 10
	}
	if q.PollDuration <= 0 {
		q.PollDuration = 100 * time.Millisecond
	}
}
