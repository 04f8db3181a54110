package core

import (
	"errors"
	"strings"
	"time"
)

// Collection prefixes used by generated identifiers.
const (
	DriverPrefix   = "drv"
	VehiclePrefix  = "veh"
	ActivityPrefix = "act"
)

type (
	// Driver is a person who can be assigned a vehicle and recorded on
	// activities. AssignedVehicleID is a weak reference: it may be empty or
	// point at a vehicle that no longer exists, and readers must treat a
	// dangling id as "unassigned".
	Driver struct {
		ID                string `json:"id"`
		Name              string `json:"name"`
		AssignedVehicleID string `json:"assignedVehicleId,omitempty"`
	}

	// Vehicle is a registered vehicle. There is no back-reference to drivers.
	Vehicle struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}

	// Activity is a single recorded field trip: who drove what, where, when,
	// and for how much. DriverID and VehicleID are weak references and are
	// not validated against the driver/vehicle collections at write time.
	Activity struct {
		ID        string `json:"id"`
		DriverID  string `json:"driverId"`
		VehicleID string `json:"vehicleId"`
		Location  string `json:"location,omitempty"`
		Date      string `json:"date"`
		Revenue   Amount `json:"revenue"`

		// Pre-v2 route fields. Snapshot import keeps legacy route records
		// as-is instead of renaming routeName/cost to location/revenue, so
		// these survive an import→export round trip untouched.
		RouteName string `json:"routeName,omitempty"`
		Cost      Amount `json:"cost,omitempty"`
	}
)

var (
	ErrEmptyName       = errors.New("empty driver name")
	ErrEmptyLabel      = errors.New("empty vehicle label")
	ErrMissingDriver   = errors.New("missing driver id")
	ErrMissingVehicle  = errors.New("missing vehicle id")
	ErrInvalidDate     = errors.New("invalid date")
	ErrNegativeRevenue = errors.New("negative revenue")
	ErrInvalidRange    = errors.New("start date after end date")
)

// DateLayout is the wire format for all activity dates. Fixed-width ISO
// dates order correctly under plain string comparison, which every range
// filter below relies on.
const DateLayout = "2006-01-02"

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// FormatDate renders t in the wire date format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// InRange reports whether date falls within the inclusive interval
// [start, end]. An empty bound leaves that side open.
func InRange(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

func (d Driver) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (v Vehicle) Validate() error {
	if strings.TrimSpace(v.Label) == "" {
		return ErrEmptyLabel
	}
	return nil
}

func (a Activity) Validate() error {
	if strings.TrimSpace(a.DriverID) == "" {
		return ErrMissingDriver
	}
	if strings.TrimSpace(a.VehicleID) == "" {
		return ErrMissingVehicle
	}
	if !ValidDate(a.Date) {
		return ErrInvalidDate
	}
	if a.Revenue < 0 {
		return ErrNegativeRevenue
	}
	return nil
}
