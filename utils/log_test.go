package utils_test

import (
	"os"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kevin-chtw/tw_goldmj/utils"
)

func Test_FormatterLine(t *testing.T) {
	f := &utils.Formatter{}
	entry := &logrus.Entry{
		Time:    time.Date(2026, 3, 1, 12, 30, 0, 0, time.Local),
		Level:   logrus.InfoLevel,
		Message: "gold revealed",
		Caller:  &runtime.Frame{File: "/srv/app/play.go", Line: 42, Function: "mahjong.revealGold"},
	}

	out, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	line := string(out)
	for _, want := range []string{"[info]", "play.go:42", "revealGold", "gold revealed"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
}

func Test_LoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	log := utils.Logger(logrus.InfoLevel, dir)
	log.Info("hello")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no log file created")
	}
	if !strings.HasSuffix(entries[0].Name(), ".log") {
		t.Errorf("unexpected file %s", entries[0].Name())
	}
}
