package schema

// Custom string types for type safety.
type (
	// Phase represents the lifecycle phase of a subject's pipeline.
	Phase string

	// ExperienceLevel represents the qualitative tier derived from the composite score.
	ExperienceLevel string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for history storage.
	DatabaseBackend string
)

// All pipeline phases. Done is transient and auto-reverts to Idle.
const (
	IdlePhase    Phase = "idle" // default
	ListingPhase Phase = "listing"
	DetailsPhase Phase = "details"
	DonePhase    Phase = "done"
)

// All experience levels, lowest to highest.
const (
	BeginnerLevel ExperienceLevel = "Beginner"
	JuniorLevel   ExperienceLevel = "Junior"
	MidLevel      ExperienceLevel = "Mid-Level"
	SeniorLevel   ExperienceLevel = "Senior"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidHistoryBackends lists all valid history backends.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Sentinel categories for the extension histogram so charts and tables
// never receive an empty or unnamed bucket.
const (
	NoExtension = "no extension"
	NoData      = "no data"
)

// SizeBucketLabels are the fixed commit-size buckets, smallest to largest.
// A commit's size is additions+deletions.
var SizeBucketLabels = []string{"0-50", "51-100", "101-200", "201-500", "500+"}

// SizeBucketUpper holds the inclusive upper bound of each bucket except the
// last, which is unbounded.
var SizeBucketUpper = []int{50, 100, 200, 500}

// Aggregation display limits.
const (
	TopExtensionCount = 8  // extensions kept in the histogram
	MaxIntervalPoints = 30 // inter-commit gap samples kept for trends
)
