package config

import (
	"context"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ResolveAPIKey returns the feed API key. In prod, when APIKeyParameter is set, the key is read
// from SSM Parameter Store and the configured APIKey is only a fallback.
func (cfg *FeedConfig) ResolveAPIKey(env string) string {
	if env == "prod" && cfg.APIKeyParameter != "" {
		if key := getParameterStoreValue(cfg.APIKeyParameter, true); key != "" {
			return key
		}
	}
	return cfg.APIKey
}

func getParameterStoreValue(parameterName string, decrypt bool) string {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return ""
	}

	client := ssm.NewFromConfig(cfg)

	input := &ssm.GetParameterInput{
		Name:           &parameterName,
		WithDecryption: &decrypt,
	}

	result, err := client.GetParameter(ctx, input)
	if err != nil {
		return ""
	}

	if result.Parameter == nil || result.Parameter.Value == nil {
		return ""
	}

	return *result.Parameter.Value
}
