package aws

import (
	"context"
	"encoding/json"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// secretsAPI is the slice of the Secrets Manager client this package calls.
type secretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsClient loads JSON credential bundles from Secrets Manager.
type SecretsClient struct {
	api secretsAPI
}

func NewSecretsClient(cfg sdkaws.Config) *SecretsClient {
	return &SecretsClient{api: secretsmanager.NewFromConfig(cfg)}
}

// GetSecretMap reads a secret stored as a flat JSON object, for example
// {"POSTGRES_USER": "...", "POSTGRES_PASSWORD": "..."}. Binary secrets are
// rejected.
func (s *SecretsClient) GetSecretMap(ctx context.Context, name string) (map[string]string, error) {
	out, err := s.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: sdkaws.String(name)})
	if err != nil {
		return nil, fmt.Errorf("read secret %q: %w", name, err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("secret %q is binary, expected a JSON object", name)
	}

	values := map[string]string{}
	if err := json.Unmarshal([]byte(*out.SecretString), &values); err != nil {
		return nil, fmt.Errorf("secret %q is not a JSON object of strings: %w", name, err)
	}
	return values, nil
}
