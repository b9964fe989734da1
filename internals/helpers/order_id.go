package helper

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenOrderID → ORDER_<unix-millis>_<random>
func GenOrderID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("ORDER_%d_%s", now.UnixMilli(), suffix)
}

// GenRefundID → REFUND_<unix-millis>
func GenRefundID(now time.Time) string {
	return fmt.Sprintf("REFUND_%d", now.UnixMilli())
}
