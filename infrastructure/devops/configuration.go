package devops

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// AppConfig is the deployment configuration, stored as one yaml document in
// SSM Parameter Store. Environment variables of the same meaning win over
// the parameter so local development needs no AWS access.
type AppConfig struct {
	DSN           string `yaml:"dsn"`
	SigningSecret string `yaml:"signingSecret"` // base64
	ReportBucket  string `yaml:"reportBucket"`
	ReportSender  string `yaml:"reportSender"`
	Addr          string `yaml:"addr"`
}

var (
	once    sync.Once
	cfg     *AppConfig
	loadErr error
)

// LoadAppConfig resolves the configuration once per process.
func LoadAppConfig(ctx context.Context) (*AppConfig, error) {
	once.Do(func() {
		loaded := &AppConfig{}

		if paramName := os.Getenv("KINTAI_CONFIG_PARAMETER"); paramName != "" {
			awsCfg, err := config.LoadDefaultConfig(ctx)
			if err != nil {
				loadErr = fmt.Errorf("load aws config: %w", err)
				return
			}

			client := ssm.NewFromConfig(awsCfg)

			out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
				Name:           aws.String(paramName),
				WithDecryption: aws.Bool(true),
			})
			if err != nil {
				loadErr = fmt.Errorf("get parameter: %w", err)
				return
			}

			if err := yaml.Unmarshal([]byte(*out.Parameter.Value), loaded); err != nil {
				loadErr = fmt.Errorf("unmarshal yaml: %w", err)
				return
			}
		}

		applyEnvOverrides(loaded)

		if loaded.DSN == "" {
			loadErr = fmt.Errorf("no DSN configured (set DSN or KINTAI_CONFIG_PARAMETER)")
			return
		}
		if loaded.Addr == "" {
			loaded.Addr = "0.0.0.0:8090"
		}

		cfg = loaded
	})

	return cfg, loadErr
}

func applyEnvOverrides(c *AppConfig) {
	if v := os.Getenv("DSN"); v != "" {
		c.DSN = v
	}
	if v := os.Getenv("KINTAI_SIGNING_SECRET"); v != "" {
		c.SigningSecret = v
	}
	if v := os.Getenv("REPORT_BUCKET"); v != "" {
		c.ReportBucket = v
	}
	if v := os.Getenv("REPORT_SENDER"); v != "" {
		c.ReportSender = v
	}
	if v := os.Getenv("ADDR"); v != "" {
		c.Addr = v
	}
}
