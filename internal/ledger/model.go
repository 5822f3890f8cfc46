package ledger

// ThermosKey identifies one of the three physical thermoses behind the
// counter.
type ThermosKey string

const (
	ThermosKarak     ThermosKey = "karak"
	ThermosAlmohib   ThermosKey = "almohib"
	ThermosOtherTeas ThermosKey = "otherTeas"
)

var ThermosKeys = []ThermosKey{ThermosKarak, ThermosAlmohib, ThermosOtherTeas}

const (
	defaultCapacityML = 3000

	// StaleAfterMillis is how long tea stays fresh after the last
	// reheat.
	StaleAfterMillis = 40 * 60 * 1000
)

type Thermos struct {
	CurrentLevelML float64 `json:"currentLevel_ml"`
	MaxCapacityML  float64 `json:"maxCapacity_ml"`
	Refills        int     `json:"refills"`
	LastReheatedAt int64   `json:"lastReheatedAt,omitempty"`
}

// IsStale reports whether the thermos has gone too long without a
// reheat. A thermos that was never reheated is not considered stale.
func (t Thermos) IsStale(nowMillis int64) bool {
	if t.LastReheatedAt == 0 {
		return false
	}
	return nowMillis-t.LastReheatedAt > StaleAfterMillis
}

// ThermosSet is the persisted record at stats/thermos.
type ThermosSet struct {
	Karak     Thermos `json:"karak"`
	Almohib   Thermos `json:"almohib"`
	OtherTeas Thermos `json:"otherTeas"`
}

func (s *ThermosSet) Get(key ThermosKey) *Thermos {
	switch key {
	case ThermosKarak:
		return &s.Karak
	case ThermosAlmohib:
		return &s.Almohib
	case ThermosOtherTeas:
		return &s.OtherTeas
	}
	return nil
}

// DefaultThermosSet is a fresh full set, used on first boot and on
// shift reset.
func DefaultThermosSet() ThermosSet {
	fresh := Thermos{CurrentLevelML: defaultCapacityML, MaxCapacityML: defaultCapacityML}
	return ThermosSet{Karak: fresh, Almohib: fresh, OtherTeas: fresh}
}

// ThermosUsage is the ml drawn from each thermos by one submitted cart.
type ThermosUsage struct {
	Karak     float64
	Almohib   float64
	OtherTeas float64
}

// IngredientTimer is a countdown for a brewing batch, shared across
// devices.
type IngredientTimer struct {
	Name     string `json:"name"`
	EndTime  *int64 `json:"endTime"`
	Duration int    `json:"duration"`
}

// TimerType identifies a brewing timer slot.
type TimerType string

const (
	TimerKarak      TimerType = "karak"
	TimerRedTea     TimerType = "redTea"
	TimerAlmohibTea TimerType = "almohibTea"
)

var timerNames = map[TimerType]string{
	TimerKarak:      "Karak",
	TimerRedTea:     "Red Tea",
	TimerAlmohibTea: "Almohib",
}
