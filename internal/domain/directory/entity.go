package directory

// PersonType tags a code with the kind of person it belongs to. The tag is
// carried alongside the code from lookup onward and never re-derived from
// the code prefix.
type PersonType string

const (
	PersonTypeEmployee PersonType = "employee"
	PersonTypeClient   PersonType = "client"
)

func (t PersonType) IsValid() bool {
	return t == PersonTypeEmployee || t == PersonTypeClient
}

// Label is the display name used on badges and exports.
func (t PersonType) Label() string {
	switch t {
	case PersonTypeEmployee:
		return "Employé"
	case PersonTypeClient:
		return "Client"
	default:
		return ""
	}
}

// ParsePersonType accepts both the API values and the display labels.
func ParsePersonType(s string) (PersonType, bool) {
	switch s {
	case string(PersonTypeEmployee), "Employé", "Employe":
		return PersonTypeEmployee, true
	case string(PersonTypeClient), "Client":
		return PersonTypeClient, true
	default:
		return "", false
	}
}

// Person is the read model shared by employees and clients.
type Person struct {
	Type       PersonType
	Code       string
	Name       string
	Classifier string
	Status     string
}

// ScanMode is the kind of reader a scan came from.
type ScanMode string

const (
	ScanModeAny     ScanMode = ""
	ScanModeBarcode ScanMode = "barcode"
	ScanModeQRCode  ScanMode = "qrcode"
)

func (m ScanMode) IsValid() bool {
	return m == ScanModeAny || m == ScanModeBarcode || m == ScanModeQRCode
}

// Expects returns the person type a scan mode accepts. Barcode readers are
// used for employee badges, QR readers for client passes.
func (m ScanMode) Expects() (PersonType, bool) {
	switch m {
	case ScanModeBarcode:
		return PersonTypeEmployee, true
	case ScanModeQRCode:
		return PersonTypeClient, true
	default:
		return "", false
	}
}
