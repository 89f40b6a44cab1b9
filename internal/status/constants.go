// internal/status/constants.go
package status

// Channel Status Block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of registers per channel.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the channel health state.
const SlotHealthCode = 0

// SlotLastErrorCode holds the last error classification.
const SlotLastErrorCode = 1

// SlotSecondsInError holds the duration (in seconds) the channel has been in error.
const SlotSecondsInError = 2

// SlotDefer is 1 while the control loop must not act on the outputs.
const SlotDefer = 3

// SlotExcitation holds the applied excitation code.
const SlotExcitation = 4

// SlotThresholdHi and SlotThresholdLo hold the applied threshold as float32 (big-endian words).
const SlotThresholdHi = 5
const SlotThresholdLo = 6

// ---- RESERVED RANGE ----

// Slots 7–10 are reserved for future use.
const SlotReservedStart = 7
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// SecondsInErrorMax is the saturation value of SlotSecondsInError.
const SecondsInErrorMax = 65535

// ---- HEALTH CODES ----

// HealthUnknown represents an unknown or boot state.
const HealthUnknown uint16 = 0

// HealthOK represents a channel whose last evaluation selected a threshold.
const HealthOK uint16 = 1

// HealthError represents a channel whose last evaluation or poll failed.
const HealthError uint16 = 2

// ---- ERROR CODES ----

// ErrorCodeSourceUnreachable is published when the setpoint could not be read.
// Codes 1–3 are threshold classifications.
const ErrorCodeSourceUnreachable uint16 = 10

// ErrorCodeDeliveryFailed is published when a selected excitation could not be
// written to every target.
const ErrorCodeDeliveryFailed uint16 = 11
