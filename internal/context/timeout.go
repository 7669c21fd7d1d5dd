package contextutil

import (
	"context"
	"time"
)

// ConnectTimeout é o timeout padrão para abrir e verificar uma conexão
var ConnectTimeout = 10 * time.Second

// ProbeTimeout bounds the metadata queries run against one datasource.
var ProbeTimeout = 5 * time.Second

// WithTimeout cria um contexto com timeout, usando ConnectTimeout se não especificado
func WithTimeout(ctx context.Context, timeout ...time.Duration) (context.Context, context.CancelFunc) {
	t := ConnectTimeout
	if len(timeout) > 0 && timeout[0] > 0 {
		t = timeout[0]
	}
	return context.WithTimeout(ctx, t)
}

// WithProbeTimeout cria um contexto com timeout para as consultas de metadados
func WithProbeTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, ProbeTimeout)
}
