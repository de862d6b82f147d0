package position

// Position is one reference row of the Positions sheet. Names are not
// unique; sheet order is display order.
type Position struct {
	Name string
	Icon string
}

// defaultPositions is what an empty sheet answers with. The list is never
// written back implicitly; only positions.replaceAll persists.
var defaultPositions = []Position{
	{Name: "Bartender", Icon: "🍸"},
	{Name: "Server", Icon: "🍽️"},
	{Name: "Host", Icon: "🎤"},
	{Name: "Cook", Icon: "🔥"},
	{Name: "Dishwasher", Icon: "🧼"},
	{Name: "Manager", Icon: "📋"},
}
