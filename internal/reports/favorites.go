package reports

import "github.com/andresuchdata/panaderia-reports/internal/domain"

// FavoriteReports returns the reports of the unified collection whose "<id>-<kind>" key is
// in keys, newest first and without repeats.
func (d *Dataset) FavoriteReports(keys map[string]struct{}) []domain.Report {
	seen := make(map[string]struct{}, len(keys))
	favorites := filterReports(d.all, func(r domain.Report) bool {
		key := r.FavoriteKey()
		if _, ok := keys[key]; !ok {
			return false
		}
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		return true
	})
	for i := range favorites {
		favorites[i].IsFavorite = true
	}
	return favorites
}

// MarkFavorites returns a copy of reports with IsFavorite set from keys.
func MarkFavorites(reports []domain.Report, keys map[string]struct{}) []domain.Report {
	if reports == nil {
		return nil
	}
	out := make([]domain.Report, len(reports))
	for i, r := range reports {
		_, r.IsFavorite = keys[r.FavoriteKey()]
		out[i] = r
	}
	return out
}
