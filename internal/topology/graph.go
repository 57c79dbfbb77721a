package topology

import (
	"fmt"
	"sort"

	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/models"
)

// BuildGraph renders a link assignment as the DU -> Link -> RU -> Cell
// hierarchy. The transform is pure and deterministic: link nodes are
// emitted in ascending link id, cells in ascending cell id, so an identical
// assignment always yields an identical graph.
func BuildGraph(cellToLink map[int]int) *models.Topology {
	cellsByLink := make(map[int][]int)
	for cid, lid := range cellToLink {
		cellsByLink[lid] = append(cellsByLink[lid], cid)
	}
	linkIDs := make([]int, 0, len(cellsByLink))
	for lid := range cellsByLink {
		linkIDs = append(linkIDs, lid)
	}
	sort.Ints(linkIDs)

	topo := &models.Topology{
		Nodes: []models.Node{{ID: "DU", Type: models.NodeTypeDU, Label: "DU"}},
		Edges: []models.Edge{},
	}
	for _, lid := range linkIDs {
		linkID := fmt.Sprintf("Link_%d", lid+1)
		topo.Nodes = append(topo.Nodes, models.Node{
			ID: linkID, Type: models.NodeTypeLink, Label: fmt.Sprintf("Link %d", lid+1),
		})
		topo.Edges = append(topo.Edges, models.Edge{Source: "DU", Target: linkID})

		ruID := fmt.Sprintf("RU_%d", lid+1)
		topo.Nodes = append(topo.Nodes, models.Node{
			ID: ruID, Type: models.NodeTypeRU, Label: fmt.Sprintf("RU %d", lid+1),
		})
		topo.Edges = append(topo.Edges, models.Edge{Source: linkID, Target: ruID})

		cells := cellsByLink[lid]
		sort.Ints(cells)
		for _, cid := range cells {
			cellID := fmt.Sprintf("Cell_%d", cid)
			topo.Nodes = append(topo.Nodes, models.Node{
				ID: cellID, Type: models.NodeTypeCell, Label: fmt.Sprintf("Cell %d", cid),
			})
			topo.Edges = append(topo.Edges, models.Edge{Source: ruID, Target: cellID})
		}
	}
	return topo
}
