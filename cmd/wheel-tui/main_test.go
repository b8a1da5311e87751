package main

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/prizewheel/pkg/config"
	"github.com/decker502/prizewheel/pkg/device"
	"github.com/decker502/prizewheel/pkg/provider"
	"github.com/decker502/prizewheel/pkg/utils"
)

func TestTUIWheelSpinAndQuit(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(80, 24)

	cfg := config.DefaultWheelConfig()
	p := provider.NewRandom(utils.NewRand(5), cfg.SectorCount(), 0)
	w, err := newTUIWheel(context.Background(), screen, cfg, device.Forced(config.TierLow), p)
	if err != nil {
		t.Fatal(err)
	}
	defer w.controller.Close()

	if !w.handleInput(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)) {
		t.Fatal("space should not quit")
	}
	if !w.controller.Spinning() {
		t.Fatal("space should request a spin")
	}
	if w.status != "Spinning..." {
		t.Errorf("status = %q", w.status)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := w.controller.Await(ctx); err != nil {
		t.Fatal(err)
	}
	w.frame()

	if w.handleInput(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
	if w.handleInput(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Escape should quit")
	}
}
