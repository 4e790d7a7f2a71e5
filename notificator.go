package main

import (
	"bytes"
	"errors"
	"os/exec"
	"runtime"
)

type Notificator interface {
	Notify(title, message string) error
}

type MacNotificator struct{}

func (no *MacNotificator) Notify(title string, message string) error {
	if runtime.GOOS != "darwin" {
		return errors.New("desktop notification is only supported on macOS")
	}
	var errOut bytes.Buffer
	cmd := exec.Command("osascript", "-e", `display notification "`+message+`" with title "taikin" subtitle "`+title+`" sound name "Blow"`)
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		return errors.New(errOut.String())
	}
	return nil
}
