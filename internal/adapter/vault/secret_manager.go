package vault

import (
	"fmt"

	"github.com/hashicorp/vault/api"
)

// SecretManager fetches runtime secrets so production configs never
// carry API keys in plain YAML.
type SecretManager struct {
	client *api.Client
}

func NewSecretManager(address, token string) (*SecretManager, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, err
	}

	client.SetToken(token)

	return &SecretManager{client: client}, nil
}

func (sm *SecretManager) GetDatabaseURL() (string, error) {
	return sm.readField("secret/data/database", "connection_string")
}

func (sm *SecretManager) GetOpenAIAPIKey() (string, error) {
	return sm.readField("secret/data/openai", "api_key")
}

func (sm *SecretManager) GetJWTSecret() (string, error) {
	return sm.readField("secret/data/jwt", "secret")
}

func (sm *SecretManager) GetSendgridAPIKey() (string, error) {
	return sm.readField("secret/data/sendgrid", "api_key")
}

func (sm *SecretManager) readField(path, field string) (string, error) {
	secret, err := sm.client.Logical().Read(path)
	if err != nil {
		return "", err
	}
	if secret == nil {
		return "", fmt.Errorf("vault: secret %s not found", path)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("vault: secret %s has no data", path)
	}
	value, ok := data[field].(string)
	if !ok {
		return "", fmt.Errorf("vault: secret %s has no field %s", path, field)
	}
	return value, nil
}
