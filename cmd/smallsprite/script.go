package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/MrRaffo/smallsprite"
	"go.uber.org/zap"
)

// script feeds the editor one line of commands per frame. Blank lines and
// lines starting with # take a frame without doing anything. The end of the
// input quits.
type script struct {
	scanner *bufio.Scanner
	logger  *zap.Logger
	line    int
}

func newScript(r io.Reader, logger *zap.Logger) *script {
	return &script{
		scanner: bufio.NewScanner(r),
		logger:  logger,
	}
}

func openScript(file string, logger *zap.Logger) (*script, io.Closer, error) {
	if file == "" || file == "-" {
		return newScript(os.Stdin, logger), io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, err
	}
	return newScript(f, logger), f, nil
}

func (s *script) Poll() (smallsprite.Command, bool) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			s.logger.Error("read script", zap.Error(err))
		}
		return smallsprite.Command{Op: smallsprite.OpQuit}, true
	}
	s.line++

	line := strings.TrimSpace(s.scanner.Text())
	if line == "" || strings.HasPrefix(line, "#") {
		return smallsprite.Command{}, false
	}

	cmd, err := smallsprite.ParseCommand(line)
	if err != nil {
		s.logger.Warn("bad command", zap.Int("line", s.line), zap.Error(err))
		return smallsprite.Command{}, false
	}
	return cmd, true
}
