package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stocktrack-api/internal/application/auth"
	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/pkg/config"
)

var _ auth.ResetCodeStore = (*ResetCodeStore)(nil)

// ResetCodeStore guarda códigos de recuperación de contraseña en Redis.
// El TTL de la clave implementa la expiración del código: un código vencido
// simplemente no existe.
type ResetCodeStore struct {
	client *redis.Client
}

// NewClient construye el cliente de Redis a partir de la configuración y
// verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func NewResetCodeStore(client *redis.Client) *ResetCodeStore {
	return &ResetCodeStore{client: client}
}

// Save guarda el código con expiración. Sobrescribe cualquier código previo
// del mismo email.
func (s *ResetCodeStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, resetKey(email), code, ttl).Err(); err != nil {
		return fmt.Errorf("save reset code: %w", err)
	}
	return nil
}

// Get devuelve el código vigente o domain.ErrNotFound si no hay ninguno.
func (s *ResetCodeStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, resetKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get reset code: %w", err)
	}
	return code, nil
}

// Delete consume el código (un solo uso).
func (s *ResetCodeStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, resetKey(email)).Err(); err != nil {
		return fmt.Errorf("delete reset code: %w", err)
	}
	return nil
}

func resetKey(email string) string {
	return "pwdreset:" + strings.ToLower(email)
}
