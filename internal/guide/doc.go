/*
Package guide parses authored recovery guides into a typed block tree.

A guide is plain text written by clinic staff with a small set of
conventions:

	## 🕐 Week 1                  week section (level-2 heading with a week marker)
	### Swelling                 level-3 heading, nested in the open section or card
	#### Disclaimer              level-4 heading, always top level
	- ice packs for 20 minutes   list item ("-", "*", "•", "·", "1.", "1)")
	**avoid saunas**             explicit emphasis
	💡 Tip                        card trigger (phrases come from the locale table)

Parse runs in a single pass and never fails. Each line is classified
(Classify), its text split into plain and emphasized spans (FormatInline),
and the result fed through a small state machine that tracks an open
paragraph, an open list, at most one open card and at most one open week
section. Cards nest inside week sections; week sections never nest inside
cards, and info cards always close the open week section first.

The resulting Document is handed to a Visitor (see package render) to be
displayed; Walk and Document.Inlines give read-only access for tooling.
*/
package guide
