package chart

import (
	"github.com/matzehuels/chartbridge/pkg/options"
)

// DefaultsFor returns the default options tree for a chart type. Every call
// returns a freshly built tree, so callers (and the merge engine) can modify
// the result without cross-contaminating later builds. There is deliberately
// no shared default-options cache.
func DefaultsFor(typ Type) options.Tree {
	base := options.Tree{
		"responsive": true,
		"plugins": options.Tree{
			"legend": options.Tree{
				"display":  true,
				"position": "top",
			},
		},
	}

	switch typ {
	case TypeBar:
		base["scales"] = options.Tree{
			"y": options.Tree{"beginAtZero": true},
		}
	case TypeLine:
		base["scales"] = options.Tree{
			"y": options.Tree{"beginAtZero": true},
		}
		base["elements"] = options.Tree{
			"line": options.Tree{"tension": 0.0},
		}
	case TypeRadar:
		base["scales"] = options.Tree{
			"r": options.Tree{"beginAtZero": true},
		}
	case TypePie, TypeDoughnut, TypePolarArea:
		plugins := base["plugins"].(options.Tree)
		legend := plugins["legend"].(options.Tree)
		legend["position"] = "right"
	case TypeScatter, TypeBubble:
		base["scales"] = options.Tree{
			"x": options.Tree{
				"type":     "linear",
				"position": "bottom",
			},
			"y": options.Tree{"beginAtZero": true},
		}
	}

	return base
}
