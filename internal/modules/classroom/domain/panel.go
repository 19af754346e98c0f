package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownPanel = errors.New("unknown panel")

type PanelID int

const (
	PanelNone PanelID = iota
	PanelChapters
	PanelNotes
	PanelCalculator
	PanelFormulaSheet
	PanelGraphingTool
	PanelChat
)

var panelNames = map[PanelID]string{
	PanelNone:         "none",
	PanelChapters:     "chapters",
	PanelNotes:        "notes",
	PanelCalculator:   "calculator",
	PanelFormulaSheet: "formulas",
	PanelGraphingTool: "graphing",
	PanelChat:         "chat",
}

// AllPanels lists every toggleable panel in display order.
func AllPanels() []PanelID {
	return []PanelID{PanelChapters, PanelNotes, PanelCalculator, PanelFormulaSheet, PanelGraphingTool, PanelChat}
}

func (p PanelID) String() string {
	if name, ok := panelNames[p]; ok {
		return name
	}
	return fmt.Sprintf("panel(%d)", int(p))
}

func ParsePanel(name string) (PanelID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for id, candidate := range panelNames {
		if candidate == name {
			return id, nil
		}
	}
	return PanelNone, fmt.Errorf("%w: %q", ErrUnknownPanel, name)
}

// Panels holds the single active auxiliary panel. A lone field makes
// "at most one open" hold by construction.
type Panels struct {
	active PanelID
}

func (p *Panels) Activate(id PanelID) {
	p.active = id
}

// Deactivate closes id only if it is still the active panel and reports
// whether anything changed.
func (p *Panels) Deactivate(id PanelID) bool {
	if id == PanelNone || p.active != id {
		return false
	}
	p.active = PanelNone
	return true
}

func (p *Panels) Toggle(id PanelID) {
	if !p.Deactivate(id) {
		p.Activate(id)
	}
}

func (p Panels) IsActive(id PanelID) bool {
	return id != PanelNone && p.active == id
}

func (p Panels) Active() PanelID {
	return p.active
}
