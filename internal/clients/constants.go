package clients

import "time"

const (
	MAX_RETRIES     = 3
	INITIAL_BACKOFF = 500 * time.Millisecond
	MAX_BACKOFF     = 8 * time.Second
	USER_AGENT      = "emotiflow-client/1.0 (+https://github.com/spacesedan/emotiflow)"

	DEFAULT_BASE_URL = "http://localhost:5000"
)
