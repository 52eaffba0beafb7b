package internal

import (
	"strings"
	"time"
)

type Config struct {
	Port              int           `env:"PORT,default=8080"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	BannedWords       string        `env:"BANNED_WORDS,default=puta;idiota;merda"`
	LimitMessages     *int          `env:"LIMIT_MESSAGES"`
	MaxMessageLength  int           `env:"MAX_MESSAGE_LENGTH,default=500"`
}

// BannedWordList splits the configured list. Entries are ';' separated so a
// term may itself contain characters the env parser treats specially.
func (c Config) BannedWordList() []string {
	var words []string
	for _, w := range strings.Split(c.BannedWords, ";") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}
