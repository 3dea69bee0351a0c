package confidence

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"marksweep/internal/marker"
)

// archivePathExtractor flags markers living in deprecated or historical
// locations: an archive-style directory segment, or a phase number below the
// project's current phase.
type archivePathExtractor struct {
	patterns     []string
	currentPhase int
	dirWeight    float64
	phaseWeight  float64
}

func newArchivePathExtractor(patterns []string, currentPhase int, dirWeight, phaseWeight float64) *archivePathExtractor {
	lowered := make([]string, len(patterns))
	for i, p := range patterns {
		lowered[i] = strings.ToLower(p)
	}
	return &archivePathExtractor{
		patterns:     lowered,
		currentPhase: currentPhase,
		dirWeight:    dirWeight,
		phaseWeight:  phaseWeight,
	}
}

func (e *archivePathExtractor) Name() string {
	return "archive-path"
}

var phaseSegment = regexp.MustCompile(`(?i)phase[-_ ]?(\d+)`)

func (e *archivePathExtractor) Extract(m marker.TaskMarker, fc *FileContext) []Evidence {
	var out []Evidence

	path := strings.ToLower(m.FilePath)
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	for _, seg := range segments {
		for _, pat := range e.patterns {
			if seg == pat || strings.HasPrefix(seg, pat+"-") || strings.HasPrefix(seg, pat+"_") {
				out = append(out, MustEvidence(KindArchivePath, e.dirWeight,
					fmt.Sprintf("path contains archive segment %q", seg)))
			}
		}
	}

	// Phase check only runs when a current phase is configured.
	if e.currentPhase > 0 {
		if match := phaseSegment.FindStringSubmatch(path); match != nil {
			if phase, err := strconv.Atoi(match[1]); err == nil && phase < e.currentPhase {
				out = append(out, MustEvidence(KindArchivePath, e.phaseWeight,
					fmt.Sprintf("path references phase %d, project is on phase %d", phase, e.currentPhase)))
			}
		}
	}

	return out
}
