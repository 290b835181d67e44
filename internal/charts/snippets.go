package charts

import (
	"encoding/json"
	"fmt"
	"html"
)

// EChartsCDN is the script the canvas snippets load.
const EChartsCDN = "https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"

// ChartSnippet represents an embeddable ECharts chart fragment.
// Div contains a single root <div id="..." style="..."></div>.
// Script contains the <script>...</script> block that initializes the chart in that div.
// HTML contains the complete snippet with div + script combined for page embedding.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}

func buildSnippet(id, title string, height int, option map[string]interface{}) (ChartSnippet, error) {
	optJSON, err := json.Marshal(option)
	if err != nil {
		return ChartSnippet{}, err
	}

	div := fmt.Sprintf("<div id=\"%s\" style=\"width:100%%;height:%dpx;\"></div>", html.EscapeString(id), height)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById(%q);if(!el)return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, string(optJSON))

	completeHTML := fmt.Sprintf(`<script src="%s"></script>
<div class="chart-container">
	%s
</div>
%s`, EChartsCDN, div, script)

	return ChartSnippet{ID: id, Title: title, Div: div, Script: script, HTML: completeHTML}, nil
}
