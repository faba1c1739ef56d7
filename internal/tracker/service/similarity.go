package service

import (
	"math"
	"sort"

	"golang-rival-tracker/internal/entity"
	"golang-rival-tracker/pkg/utils"
)

// SimilarityEngine scores how alike two companies are across four
// weighted dimensions. It is read-only and side-effect-free.
type SimilarityEngine struct{}

// NewSimilarityEngine creates a new SimilarityEngine.
func NewSimilarityEngine() *SimilarityEngine {
	return &SimilarityEngine{}
}

// ScoredCompany pairs a candidate with its similarity score.
type ScoredCompany struct {
	Company entity.Company
	Score   float64
}

// Similarity returns a score in [0,100]. A dimension only counts when
// both companies have a non-empty value for it; the final score is
// normalized over the weights of the dimensions that qualified. With no
// qualifying dimension the score is 0.
func (e *SimilarityEngine) Similarity(a, b *entity.Company) float64 {
	type dimension struct {
		weight float64
		score  func() float64
		filled bool
	}

	dims := []dimension{
		{
			weight: 0.40,
			score:  func() float64 { return textJaccard(a.TargetSegment, b.TargetSegment) },
			filled: a.TargetSegment != "" && b.TargetSegment != "",
		},
		{
			weight: 0.30,
			score:  func() float64 { return setJaccard(a.KeyFeatures, b.KeyFeatures) },
			filled: len(a.KeyFeatures) > 0 && len(b.KeyFeatures) > 0,
		},
		{
			weight: 0.20,
			score:  func() float64 { return textJaccard(a.ProductDescription, b.ProductDescription) },
			filled: a.ProductDescription != "" && b.ProductDescription != "",
		},
		{
			weight: 0.10,
			score:  func() float64 { return textJaccard(a.Pricing, b.Pricing) },
			filled: a.Pricing != "" && b.Pricing != "",
		},
	}

	var weighted, totalWeight float64
	for _, dim := range dims {
		if !dim.filled {
			continue
		}
		weighted += dim.weight * dim.score()
		totalWeight += dim.weight
	}
	if totalWeight == 0 {
		return 0
	}
	return math.Round(weighted/totalWeight*100*100) / 100
}

// TopSimilar ranks candidates against the target, excluding the target
// itself. With sameSectorOnly set, candidates outside the target's
// sector are skipped unless the target has no sector. Ties keep the
// candidate input order.
func (e *SimilarityEngine) TopSimilar(target *entity.Company, candidates []entity.Company, topN int, sameSectorOnly bool) []ScoredCompany {
	scored := make([]ScoredCompany, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.ID == target.ID {
			continue
		}
		if sameSectorOnly && target.SectorID != nil {
			if candidate.SectorID == nil || *candidate.SectorID != *target.SectorID {
				continue
			}
		}
		c := candidate
		scored = append(scored, ScoredCompany{Company: c, Score: e.Similarity(target, &c)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topN > 0 && len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

// textJaccard computes word-set overlap of two lower-cased texts. Two
// empty sets are identical; one empty set against a non-empty one is
// disjoint.
func textJaccard(a, b string) float64 {
	return jaccard(utils.Tokenize(a), utils.Tokenize(b))
}

func setJaccard(a, b []string) float64 {
	return jaccard(toSet(utils.NormalizeList(a)), toSet(utils.NormalizeList(b)))
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	intersection := 0
	for item := range a {
		if _, ok := b[item]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
