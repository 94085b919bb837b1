package secrets

import (
	"errors"
	"fmt"
	"sync"

	vaultapi "github.com/hashicorp/vault/api"

	"github.com/rise-platform/rise-edge/internal/config"
)

const (
	keyData = "data"

	aiSecret        = "ai"
	keyOpenAIAPIKey = "openai_api_key"
	keyGoogleAPIKey = "google_api_key"
)

var (
	ErrUnableToCastData = errors.New("failed to cast data")
	ErrSecretNotFound   = errors.New("secret not found")
)

type vaultReader interface {
	Read(path string) (*vaultapi.Secret, error)
}

// Store reads provider credentials from Vault kv v2.
// Secrets are cached in memory for the process lifetime
type Store struct {
	cli      vaultReader
	basePath string

	cache map[string]map[string]string
	mux   sync.Mutex
}

func NewStore(cli vaultReader, basePath string) *Store {
	return &Store{
		cli:      cli,
		basePath: basePath,
		cache:    make(map[string]map[string]string),
	}
}

func (s *Store) getPath(name string) string {
	return fmt.Sprintf("%s%s", s.basePath, name)
}

// Get returns the value of the key stored in the named secret, a missing key is an empty string
func (s *Store) Get(name, key string) (string, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	if data, ok := s.cache[name]; ok {
		return data[key], nil
	}

	sec, err := s.cli.Read(s.getPath(name))
	if err != nil {
		return "", fmt.Errorf("read secret %s: %w", name, err)
	}

	if sec == nil {
		return "", fmt.Errorf("%s: %w", name, ErrSecretNotFound)
	}

	raw, ok := sec.Data[keyData].(map[string]interface{})
	if !ok {
		return "", ErrUnableToCastData
	}

	data := make(map[string]string, len(raw))
	for k, v := range raw {
		str, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("%s/%s: %w", name, k, ErrUnableToCastData)
		}
		data[k] = str
	}

	s.cache[name] = data

	return data[key], nil
}

// ApplyAI overrides provider keys of cfg with values found in Vault
func (s *Store) ApplyAI(cfg *config.AI) error {
	openaiKey, err := s.Get(aiSecret, keyOpenAIAPIKey)
	if err != nil {
		return err
	}

	googleKey, err := s.Get(aiSecret, keyGoogleAPIKey)
	if err != nil {
		return err
	}

	if openaiKey != "" {
		cfg.OpenAIAPIKey = openaiKey
	}
	if googleKey != "" {
		cfg.GoogleAPIKey = googleKey
	}

	return nil
}

func NewVaultClient(cfg config.Vault) (*vaultapi.Logical, error) {
	vc := vaultapi.DefaultConfig()
	vc.Address = cfg.Address

	cli, err := vaultapi.NewClient(vc)
	if err != nil {
		return nil, fmt.Errorf("vault client: %w", err)
	}
	cli.SetToken(cfg.Token)

	return cli.Logical(), nil
}
