package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateReference produces a unique payment reference, e.g.
// BKG-1718000000000-9F2A41BC.
func GenerateReference(prefix string) string {
	if prefix == "" {
		prefix = "BKG"
	}
	random := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), random)
}
