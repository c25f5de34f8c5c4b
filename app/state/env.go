package state

import (
	"fmt"
	"io"
	"os"
)

var _ Store = (*EnvStore)(nil)

// EnvStore reads the watermark from an environment variable and emits the
// new value as a workflow command on stdout for the CI orchestrator to
// capture. It fits the single-shot mode where the pipeline, not the
// process, owns state between runs.
type EnvStore struct {
	inVar  string
	outVar string
	out    io.Writer
}

func NewEnvStore(inVar, outVar string) *EnvStore {
	return &EnvStore{inVar: inVar, outVar: outVar, out: os.Stdout}
}

func (s *EnvStore) Load() (string, error) {
	return os.Getenv(s.inVar), nil
}

func (s *EnvStore) Save(id string) error {
	_, err := fmt.Fprintf(s.out, "::set-env name=%s::%s\n", s.outVar, id)
	if err != nil {
		return fmt.Errorf("failed to emit watermark: %w", err)
	}
	return nil
}
