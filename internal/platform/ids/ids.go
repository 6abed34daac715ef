package ids

import (
	"strings"

	"github.com/google/uuid"
)

// Short devuelve el primer segmento de un uuid v4 (8 caracteres hex).
// Las colisiones se asumen despreciables; no hay reintento.
func Short() string {
	head, _, _ := strings.Cut(uuid.NewString(), "-")
	return head
}
