package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/tetra/internal/input"
)

var keyMap = map[ebiten.Key]input.Key{
	ebiten.KeyEscape:     input.KeyEscape,
	ebiten.KeySpace:      input.KeySpace,
	ebiten.KeyEnter:      input.KeyEnter,
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyArrowRight: input.KeyRight,
	ebiten.KeyArrowUp:    input.KeyUp,
	ebiten.KeyArrowDown:  input.KeyDown,
	ebiten.KeyW:          input.KeyW,
	ebiten.KeyA:          input.KeyA,
	ebiten.KeyS:          input.KeyS,
	ebiten.KeyD:          input.KeyD,
	ebiten.KeyP:          input.KeyP,
	ebiten.KeyF5:         input.KeyF5,
}

// translateKeys appends one event per mapped key; unmapped keys are skipped
func translateKeys(dst []input.Event, keys []ebiten.Key, kind input.EventKind) []input.Event {
	for _, k := range keys {
		if ik, ok := keyMap[k]; ok {
			dst = append(dst, input.Event{Kind: kind, Key: ik})
		}
	}
	return dst
}
