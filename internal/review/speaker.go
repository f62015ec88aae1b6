package review

import (
	"fmt"
	"os/exec"
	"sync"

	"github.com/sirupsen/logrus"
)

// Speaker reads card text aloud. Speak replaces any utterance still in
// progress; Cancel silences immediately.
type Speaker interface {
	Speak(text, lang string) error
	Cancel()
}

// ExecSpeaker shells out to espeak. One utterance runs at a time; the
// previous process is killed before a new one starts.
type ExecSpeaker struct {
	mu      sync.Mutex
	current *exec.Cmd
}

func NewExecSpeaker() *ExecSpeaker {
	return &ExecSpeaker{}
}

func (s *ExecSpeaker) Speak(text, lang string) error {
	s.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := exec.Command("espeak", "-v", lang, text)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start espeak: %w", err)
	}
	s.current = cmd

	go func() {
		if err := cmd.Wait(); err != nil {
			logrus.WithError(err).Debug("espeak exited")
		}
		s.mu.Lock()
		if s.current == cmd {
			s.current = nil
		}
		s.mu.Unlock()
	}()
	return nil
}

func (s *ExecSpeaker) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.Process != nil {
		_ = s.current.Process.Kill()
		s.current = nil
	}
}
