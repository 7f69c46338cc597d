package energy

import "time"

// EnergyPerMAC is the charter constant: joules per multiply-accumulate
// operation assumed for the governed model's hardware class.
const EnergyPerMAC = 4.6e-12

// #region record
// Record is one cycle's energy measurement. Consumed immediately by the
// guard and retained only in the audit log.
type Record struct {
	JoulesUsed float64   `json:"joules_used"`
	Macs       int64     `json:"macs"`
	Timestamp  time.Time `json:"timestamp"`
}

// #endregion record

// #region breach
// Breach reports a violated energy budget. It is a status value, not an
// error to be suppressed: the caller must propagate it to the process
// entry point, which performs the actual exit.
type Breach struct {
	JoulesUsed float64
	Budget     float64
	Macs       int64
	Multiplier float64
}

// RootCause renders the breach for the audit log.
func (b Breach) RootCause() string {
	return renderRootCause(b)
}

// #endregion breach
