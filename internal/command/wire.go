package command

import (
	"encoding/json"
	"fmt"
)

// The wire format is the externally tagged encoding the companion
// client has always spoken: a unit variant is its bare tag string
// ("Quit"), anything else is a single-key object mapping the tag to its
// fields ({"Focus":{"selector":{"Window":42}}}). Tag and field names
// are part of the protocol and must not change.

type focusFields struct {
	Selector json.RawMessage `json:"selector"`
}

type addWorkspaceFields struct {
	Name *string `json:"name"`
}

type renameWorkspaceFields struct {
	Selector json.RawMessage `json:"selector"`
	Name     string          `json:"name"`
}

type widthFields struct {
	Width uint32 `json:"width"`
}

type colorFields struct {
	Color uint32 `json:"color"`
}

// Marshal encodes a command for the IPC socket.
func Marshal(c Command) ([]byte, error) {
	switch c := c.(type) {
	case Quit:
		return json.Marshal("Quit")
	case Focus:
		sel, err := marshalWindowSelector(c.Selector)
		if err != nil {
			return nil, err
		}
		return tagged("Focus", focusFields{Selector: sel})
	case Close:
		sel, err := marshalWindowSelector(c.Selector)
		if err != nil {
			return nil, err
		}
		return tagged("Close", focusFields{Selector: sel})
	case AddWorkspace:
		return tagged("AddWorkspace", addWorkspaceFields{Name: c.Name})
	case RenameWorkspace:
		sel, err := marshalWorkspaceSelector(c.Selector)
		if err != nil {
			return nil, err
		}
		return tagged("RenameWorkspace", renameWorkspaceFields{Selector: sel, Name: c.Name})
	case ActivateWorkspace:
		sel, err := marshalWorkspaceSelector(c.Selector)
		if err != nil {
			return nil, err
		}
		return tagged("ActivateWorkspace", focusFields{Selector: sel})
	case SetBorderWidth:
		return tagged("SetBorderWidth", widthFields{Width: c.Width})
	case SetBorderColor:
		return tagged("SetBorderColor", colorFields{Color: c.Color})
	case SetFocusedBorderColor:
		return tagged("SetFocusedBorderColor", colorFields{Color: c.Color})
	}
	return nil, fmt.Errorf("unknown command type %T", c)
}

// Unmarshal decodes one command from an IPC payload.
func Unmarshal(data []byte) (Command, error) {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag == "Quit" {
			return Quit{}, nil
		}
		return nil, fmt.Errorf("unknown command %q", tag)
	}

	tag, fields, err := splitTagged(data)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "Focus", "Close":
		var f focusFields
		if err := json.Unmarshal(fields, &f); err != nil {
			return nil, fmt.Errorf("decode %s: %w", tag, err)
		}
		sel, err := unmarshalWindowSelector(f.Selector)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", tag, err)
		}
		if tag == "Focus" {
			return Focus{Selector: sel}, nil
		}
		return Close{Selector: sel}, nil
	case "AddWorkspace":
		var f addWorkspaceFields
		if err := json.Unmarshal(fields, &f); err != nil {
			return nil, fmt.Errorf("decode AddWorkspace: %w", err)
		}
		return AddWorkspace{Name: f.Name}, nil
	case "RenameWorkspace":
		var f renameWorkspaceFields
		if err := json.Unmarshal(fields, &f); err != nil {
			return nil, fmt.Errorf("decode RenameWorkspace: %w", err)
		}
		sel, err := unmarshalWorkspaceSelector(f.Selector)
		if err != nil {
			return nil, fmt.Errorf("decode RenameWorkspace: %w", err)
		}
		return RenameWorkspace{Selector: sel, Name: f.Name}, nil
	case "ActivateWorkspace":
		var f focusFields
		if err := json.Unmarshal(fields, &f); err != nil {
			return nil, fmt.Errorf("decode ActivateWorkspace: %w", err)
		}
		sel, err := unmarshalWorkspaceSelector(f.Selector)
		if err != nil {
			return nil, fmt.Errorf("decode ActivateWorkspace: %w", err)
		}
		return ActivateWorkspace{Selector: sel}, nil
	case "SetBorderWidth":
		var f widthFields
		if err := json.Unmarshal(fields, &f); err != nil {
			return nil, fmt.Errorf("decode SetBorderWidth: %w", err)
		}
		return SetBorderWidth{Width: f.Width}, nil
	case "SetBorderColor":
		var f colorFields
		if err := json.Unmarshal(fields, &f); err != nil {
			return nil, fmt.Errorf("decode SetBorderColor: %w", err)
		}
		return SetBorderColor{Color: f.Color}, nil
	case "SetFocusedBorderColor":
		var f colorFields
		if err := json.Unmarshal(fields, &f); err != nil {
			return nil, fmt.Errorf("decode SetFocusedBorderColor: %w", err)
		}
		return SetFocusedBorderColor{Color: f.Color}, nil
	}
	return nil, fmt.Errorf("unknown command %q", tag)
}

func marshalWindowSelector(s WindowSelector) (json.RawMessage, error) {
	switch s := s.(type) {
	case Focused:
		return json.Marshal("Focused")
	case Window:
		return tagged("Window", s.ID)
	case Closest:
		if err := validCardinal(s.Direction); err != nil {
			return nil, err
		}
		return tagged("Closest", s.Direction)
	case Cycle:
		if err := validCycle(s.Direction); err != nil {
			return nil, err
		}
		return tagged("Cycle", s.Direction)
	}
	return nil, fmt.Errorf("unknown window selector type %T", s)
}

func unmarshalWindowSelector(data json.RawMessage) (WindowSelector, error) {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag == "Focused" {
			return Focused{}, nil
		}
		return nil, fmt.Errorf("unknown window selector %q", tag)
	}

	tag, fields, err := splitTagged(data)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "Window":
		var id uint32
		if err := json.Unmarshal(fields, &id); err != nil {
			return nil, fmt.Errorf("decode Window selector: %w", err)
		}
		return Window{ID: id}, nil
	case "Closest":
		var dir CardinalDirection
		if err := json.Unmarshal(fields, &dir); err != nil {
			return nil, fmt.Errorf("decode Closest selector: %w", err)
		}
		if err := validCardinal(dir); err != nil {
			return nil, err
		}
		return Closest{Direction: dir}, nil
	case "Cycle":
		var dir CycleDirection
		if err := json.Unmarshal(fields, &dir); err != nil {
			return nil, fmt.Errorf("decode Cycle selector: %w", err)
		}
		if err := validCycle(dir); err != nil {
			return nil, err
		}
		return Cycle{Direction: dir}, nil
	}
	return nil, fmt.Errorf("unknown window selector %q", tag)
}

func marshalWorkspaceSelector(s WorkspaceSelector) (json.RawMessage, error) {
	switch s := s.(type) {
	case Index:
		return tagged("Index", s.Index)
	case Name:
		return tagged("Name", s.Name)
	}
	return nil, fmt.Errorf("unknown workspace selector type %T", s)
}

func unmarshalWorkspaceSelector(data json.RawMessage) (WorkspaceSelector, error) {
	tag, fields, err := splitTagged(data)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "Index":
		var idx int
		if err := json.Unmarshal(fields, &idx); err != nil {
			return nil, fmt.Errorf("decode Index selector: %w", err)
		}
		if idx < 0 {
			return nil, fmt.Errorf("negative workspace index %d", idx)
		}
		return Index{Index: idx}, nil
	case "Name":
		var name string
		if err := json.Unmarshal(fields, &name); err != nil {
			return nil, fmt.Errorf("decode Name selector: %w", err)
		}
		return Name{Name: name}, nil
	}
	return nil, fmt.Errorf("unknown workspace selector %q", tag)
}

func tagged(tag string, fields any) (json.RawMessage, error) {
	inner, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]json.RawMessage{tag: inner})
}

func splitTagged(data []byte) (string, json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", nil, fmt.Errorf("malformed payload: %w", err)
	}
	if len(obj) != 1 {
		return "", nil, fmt.Errorf("expected a single-variant object, got %d keys", len(obj))
	}
	for tag, fields := range obj {
		return tag, fields, nil
	}
	panic("unreachable")
}

func validCardinal(d CardinalDirection) error {
	switch d {
	case East, West, North, South:
		return nil
	}
	return fmt.Errorf("invalid direction %q", string(d))
}

func validCycle(d CycleDirection) error {
	switch d {
	case Next, Prev:
		return nil
	}
	return fmt.Errorf("invalid cycle direction %q", string(d))
}
