package rank

import "encoding/json"

// JSONFormatter formats a ranking as indented JSON
type JSONFormatter struct{}

// Format generates JSON output for a ranked strategy set
func (jf *JSONFormatter) Format(set *RankingSet) (string, error) {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
