package game

import "sort"

// rankedViews returns the final standings: descending score, ties keep
// join order and share a rank, competition style (1, 2, 2, 4).
func rankedViews(players []Player, scores map[Player]int, host Player) []PlayerView {
	views := make([]PlayerView, 0, len(players))
	for _, p := range players {
		views = append(views, PlayerView{
			Id:       p.Id(),
			Nickname: p.Username(),
			Score:    scores[p],
			IsHost:   p == host,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Score > views[j].Score
	})

	for i := range views {
		if i > 0 && views[i].Score == views[i-1].Score {
			views[i].Rank = views[i-1].Rank
		} else {
			views[i].Rank = i + 1
		}
	}
	return views
}
