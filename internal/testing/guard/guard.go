package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("DECORA_TEST_MODE") == "" {
			_ = os.Setenv("DECORA_TEST_MODE", "1")
		}
	})
}
