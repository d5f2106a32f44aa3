package assign

import (
	"fmt"
	"math"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds every knob of a build. It is loaded from YAML and echoed next
// to the written model for reproducibility.
//
// Penalties are non-negative magnitudes; they enter the (maximized)
// objective with a negative sign. Rewards enter with a positive sign.
type Config struct {
	PositiveBidThreshold float64 `yaml:"positive_bid_threshold" validate:"gte=0"`
	DefaultBid           float64 `yaml:"default_bid_when_absent" validate:"gte=0"`

	MaxPapersPerReviewer map[Role]int `yaml:"max_papers_per_reviewer" validate:"required,dive,keys,oneof=PC SPC AC,endkeys,gte=0"`
	MinPapersPerReviewer map[Role]int `yaml:"min_papers_per_reviewer,omitempty" validate:"omitempty,dive,keys,oneof=PC SPC AC,endkeys,gte=0"`
	MaxReviewsPerPaper   map[Role]int `yaml:"max_reviews_per_paper" validate:"required,dive,keys,oneof=PC SPC AC,endkeys,gte=0"`
	RelaxPaperCapacity   bool         `yaml:"relax_paper_capacity"`

	// SoftConstraints toggles blocks 5-10.
	SoftConstraints bool `yaml:"soft_constraints"`

	CSReward          float64           `yaml:"cs_reward" validate:"gte=0"`
	CoReviewPenalties DistancePenalties `yaml:"coreview_distance_penalties"`
	SeniorityReward   float64           `yaml:"seniority_reward" validate:"gte=0"`
	MinSeniority      float64           `yaml:"min_seniority" validate:"gte=0"`
	TargetSeniority   float64           `yaml:"target_seniority" validate:"gtefield=MinSeniority"`
	RegionReward      float64           `yaml:"region_reward" validate:"gte=0"`
	CyclePenalty      float64           `yaml:"cycle_penalty" validate:"gte=0"`

	// PaperDistributionPenalties maps role -> workload breakpoint -> penalty.
	PaperDistributionPenalties map[Role]map[int]float64 `yaml:"paper_distribution_penalties,omitempty" validate:"omitempty,dive,keys,oneof=PC SPC AC,endkeys"`
}

// DistancePenalties weighs co-reviews between reviewers at co-author
// distance 0 and 1.
type DistancePenalties struct {
	Distance0 float64 `yaml:"distance0" validate:"gte=0"`
	Distance1 float64 `yaml:"distance1" validate:"gte=0"`
}

// Deterministic defaults.
const (
	defaultPositiveBidThreshold = 4
	defaultBid                  = 1
	defaultCSReward             = 10
	defaultSeniorityReward      = 1
	defaultTargetSeniority      = 3
	defaultRegionReward         = 1
	defaultCyclePenalty         = 5
	defaultDistance0Penalty     = 1
	defaultDistance1Penalty     = 0.5
)

// DefaultConfig returns a configuration suitable for a three-tier committee.
func DefaultConfig() Config {
	return Config{
		PositiveBidThreshold: defaultPositiveBidThreshold,
		DefaultBid:           defaultBid,
		MaxPapersPerReviewer: map[Role]int{RolePC: 6, RoleSPC: 6, RoleAC: 15},
		MaxReviewsPerPaper:   map[Role]int{RolePC: 3, RoleSPC: 1, RoleAC: 1},
		SoftConstraints:      true,
		CSReward:             defaultCSReward,
		CoReviewPenalties: DistancePenalties{
			Distance0: defaultDistance0Penalty,
			Distance1: defaultDistance1Penalty,
		},
		SeniorityReward: defaultSeniorityReward,
		MinSeniority:    0,
		TargetSeniority: defaultTargetSeniority,
		RegionReward:    defaultRegionReward,
		CyclePenalty:    defaultCyclePenalty,
	}
}

// LoadConfig reads a YAML file, layers it over DefaultConfig and validates
// the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct-level rules and the cross-field rules the tags
// cannot express.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	for role, low := range c.MinPapersPerReviewer {
		if hi, ok := c.MaxPapersPerReviewer[role]; ok && low > hi {
			return fmt.Errorf("%w: min_papers_per_reviewer[%s]=%d exceeds max %d", ErrInvalidConfig, role, low, hi)
		}
	}

	for role, pens := range c.PaperDistributionPenalties {
		for k, w := range pens {
			if k <= 0 {
				return fmt.Errorf("%w: paper_distribution_penalties[%s] breakpoint %d must be positive", ErrInvalidConfig, role, k)
			}
			if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
				return fmt.Errorf("%w: paper_distribution_penalties[%s][%d]=%v", ErrInvalidConfig, role, k, w)
			}
		}
	}

	return nil
}
