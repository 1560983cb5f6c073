package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title       *lipgloss.Style
	Description *lipgloss.Style
	Objective   *lipgloss.Style
	Hint        *lipgloss.Style
	Command     *lipgloss.Style
	Progress    *lipgloss.Style
	Success     *lipgloss.Style
	Medal       *lipgloss.Style
	Error       *lipgloss.Style
	Info        *lipgloss.Style
	Footer      *lipgloss.Style

	PaneBorder       *lipgloss.Style
	ActivePaneBorder *lipgloss.Style
	PaneText         *lipgloss.Style
	Clock            *lipgloss.Style
	FlashNumber      *lipgloss.Style

	StatusBar     *lipgloss.Style
	StatusSession *lipgloss.Style
	WindowTab     *lipgloss.Style
	ActiveTab     *lipgloss.Style
	PrefixBadge   *lipgloss.Style
	ModeBadge     *lipgloss.Style
	LastKey       *lipgloss.Style

	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	DoneMark              *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
}

var defaultStyles = Styles{
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Description: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Objective: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	),
	Hint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	Command: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	),
	Progress: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	Success: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("34")).Bold(true).Padding(0, 1),
	),
	Medal: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	PaneBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	ActivePaneBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	PaneText: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Clock: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	FlashNumber: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Bold(true),
	),
	StatusBar: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("34")),
	),
	StatusSession: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("34")).Bold(true),
	),
	WindowTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("34")),
	),
	ActiveTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22")).Bold(true),
	),
	PrefixBadge: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Bold(true),
	),
	ModeBadge: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true),
	),
	LastKey: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	DoneMark: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Plain returns a style set with every style empty, for golden-free tests
// and NO_COLOR terminals.
func Plain() *Styles {
	empty := func() *lipgloss.Style { return ptr(lipgloss.NewStyle()) }
	return &Styles{
		Title: empty(), Description: empty(), Objective: empty(), Hint: empty(),
		Command: empty(), Progress: empty(), Success: empty(), Medal: empty(),
		Error: empty(), Info: empty(), Footer: empty(),
		PaneBorder: empty(), ActivePaneBorder: empty(), PaneText: empty(),
		Clock: empty(), FlashNumber: empty(),
		StatusBar: empty(), StatusSession: empty(), WindowTab: empty(),
		ActiveTab: empty(), PrefixBadge: empty(), ModeBadge: empty(), LastKey: empty(),
		Item: empty(), ItemIndicator: empty(), SelectedItemIndicator: empty(),
		SelectedItem: empty(), DoneMark: empty(), Filter: empty(),
		FilterPrompt: empty(), FilterPlaceholder: empty(), Cursor: empty(),
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
