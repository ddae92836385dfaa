package config

import "github.com/BurntSushi/xgb/xproto"

// Pointer gesture bindings. All three grabs hang off the same modifier;
// select and drag share a button, so a plain modified click both
// focuses and anchors a drag.
const (
	ModKey     = xproto.ModMask4
	ModKeyMask = xproto.KeyButMaskMod4

	SelectButton = xproto.ButtonIndex1

	DragButton     = xproto.ButtonIndex1
	DragButtonMask = xproto.KeyButMaskButton1

	ResizeButton     = xproto.ButtonIndex3
	ResizeButtonMask = xproto.KeyButMaskButton3
)
