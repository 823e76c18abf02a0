package platform

// Package platform contains OS/platform integration: filesystem helpers,
// native file dialogs, and OS open/reveal of converted files.
