package secrets

import (
	"errors"
	"testing"

	vaultapi "github.com/hashicorp/vault/api"
	"github.com/stretchr/testify/require"

	"github.com/rise-platform/rise-edge/internal/config"
)

type vaultStub struct {
	secrets map[string]*vaultapi.Secret
	err     error
	reads   int
}

func (v *vaultStub) Read(path string) (*vaultapi.Secret, error) {
	v.reads++
	if v.err != nil {
		return nil, v.err
	}

	return v.secrets[path], nil
}

func kv(data map[string]interface{}) *vaultapi.Secret {
	return &vaultapi.Secret{Data: map[string]interface{}{keyData: data}}
}

func TestUnitStoreApplyAI(t *testing.T) {
	for name, tc := range map[string]struct {
		secret   *vaultapi.Secret
		err      error
		expected config.AI
		wantErr  error
	}{
		"both keys": {
			secret: kv(map[string]interface{}{
				keyOpenAIAPIKey: "sk-vault",
				keyGoogleAPIKey: "g-vault",
			}),
			expected: config.AI{OpenAIAPIKey: "sk-vault", GoogleAPIKey: "g-vault"},
		},
		"missing key keeps env value": {
			secret:   kv(map[string]interface{}{keyGoogleAPIKey: "g-vault"}),
			expected: config.AI{OpenAIAPIKey: "sk-env", GoogleAPIKey: "g-vault"},
		},
		"secret absent": {
			wantErr: ErrSecretNotFound,
		},
		"wrong data type": {
			secret:  &vaultapi.Secret{Data: map[string]interface{}{keyData: "plain"}},
			wantErr: ErrUnableToCastData,
		},
		"wrong value type": {
			secret:  kv(map[string]interface{}{keyOpenAIAPIKey: 42}),
			wantErr: ErrUnableToCastData,
		},
		"vault unavailable": {
			err:     errors.New("connection refused"),
			wantErr: errors.New("connection refused"),
		},
	} {
		t.Run(name, func(t *testing.T) {
			stub := &vaultStub{
				secrets: map[string]*vaultapi.Secret{"secret/data/rise/ai": tc.secret},
				err:     tc.err,
			}
			store := NewStore(stub, "secret/data/rise/")

			cfg := config.AI{OpenAIAPIKey: "sk-env", GoogleAPIKey: "g-env"}
			err := store.ApplyAI(&cfg)
			if tc.wantErr != nil {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr.Error())
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expected, cfg)
		})
	}
}

func TestUnitStoreCachesSecret(t *testing.T) {
	stub := &vaultStub{
		secrets: map[string]*vaultapi.Secret{"base/ai": kv(map[string]interface{}{keyOpenAIAPIKey: "sk"})},
	}
	store := NewStore(stub, "base/")

	for i := 0; i < 3; i++ {
		val, err := store.Get(aiSecret, keyOpenAIAPIKey)
		require.NoError(t, err)
		require.Equal(t, "sk", val)
	}

	val, err := store.Get(aiSecret, keyGoogleAPIKey)
	require.NoError(t, err)
	require.Empty(t, val)
	require.Equal(t, 1, stub.reads)
}
