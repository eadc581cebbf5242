// Package profile holds user profiles and switches the active one.
//
// Profiles form a tree. Activating a profile walks the chain from the root
// to the selected profile, registers every plugin assignment into its
// device, subscribes the input devices and acquires the output devices.
// Because the root is registered first and the active profile last, a
// plugin redeclared by a descendant profile overrides its ancestor's
// assignments on the same device.
//
// The Manager serializes activation; callers never touch device state
// concurrently with it.
package profile
