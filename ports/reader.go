package ports

import (
	"courtlens/domain/player"
)

// DatasetReader loads a feature dataset from an external store. The
// engine itself never touches raw box-score or play-by-play data; rows
// arrive as flat nullable numeric mappings.
type DatasetReader interface {
	ReadDataset() (player.Dataset, error)
}
