// Package processor provides content processing implementations.
package processor

import "github.com/ZaguanLabs/polytrans"

// ContentProcessor is an alias to the main package interface.
type ContentProcessor = polytrans.ContentProcessor

// Segment is an alias to the main package type.
type Segment = polytrans.Segment
