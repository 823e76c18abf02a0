package preset

// Package preset holds named bundles of conversion options: a built-in set
// covering common targets plus user-saved presets persisted as a YAML file
// in the user config directory. A preset only carries the fields it sets,
// so applying one leaves unrelated form fields untouched.
