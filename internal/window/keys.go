package window

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// KeyShortcut identifies a key combination.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

type action string

const (
	actionNone   action = ""
	actionArrow  action = "arrow"
	actionBox    action = "box"
	actionCircle action = "circle"
	actionText   action = "text"
	actionUndo   action = "undo"
	actionExport action = "export"
	actionPaste  action = "paste"
	actionCopy   action = "copy"
	actionCancel action = "cancel"
	actionQuit   action = "quit"
)

var keyboardAction = map[KeyShortcut]action{
	{Rune: 'a', Code: key.CodeA}:                            actionArrow,
	{Rune: 'b', Code: key.CodeB}:                            actionBox,
	{Rune: 'c', Code: key.CodeC}:                            actionCircle,
	{Rune: 't', Code: key.CodeT}:                            actionText,
	{Rune: 'z', Code: key.CodeZ, Modifiers: key.ModControl}: actionUndo,
	{Rune: 'z', Code: key.CodeZ, Modifiers: key.ModMeta}:    actionUndo,
	{Rune: 'r', Code: key.CodeR}:                            actionExport,
	{Rune: 's', Code: key.CodeS, Modifiers: key.ModControl}: actionExport,
	{Rune: 'v', Code: key.CodeV, Modifiers: key.ModControl}: actionPaste,
	{Rune: 'v', Code: key.CodeV, Modifiers: key.ModMeta}:    actionPaste,
	{Rune: 'c', Code: key.CodeC, Modifiers: key.ModControl}: actionCopy,
	{Rune: 'c', Code: key.CodeC, Modifiers: key.ModMeta}:    actionCopy,
	{Code: key.CodeEscape}:                                  actionCancel,
	{Rune: 'q', Code: key.CodeQ}:                            actionQuit,
}

// lookup maps a key press to an action. Control combinations arrive with
// varying runes across drivers, so the code decides when a modifier is
// held. Plain keys match on either the code or the rune.
func lookup(e key.Event) action {
	mods := e.Modifiers &^ key.ModShift
	r := unicode.ToLower(e.Rune)
	for ks, a := range keyboardAction {
		if ks.Modifiers != mods {
			continue
		}
		if ks.Code == e.Code || (mods == 0 && ks.Rune != 0 && ks.Rune == r) {
			return a
		}
	}
	return actionNone
}
