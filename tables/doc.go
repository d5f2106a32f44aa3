// Package tables reads and writes the already-normalized CSV tables that
// feed assign and ttc.
//
// Every file carries a header row; columns are matched by name, so extra
// columns are ignored and order does not matter. Layouts:
//
//	reviewers.csv    id,role,seniority,region,is_cs,authored   (authored: ids joined by ';')
//	candidates.csv   paper,reviewer[,role,score,bid,topic_score]
//	conflicts.csv    paper,reviewer
//	fixed.csv        paper,reviewer
//	papers.csv       paper
//	rejected.csv     paper
//	distances.csv    reviewer_1,reviewer_2,distance
//	coreviews.csv    reviewer_1,reviewer_2,paper
//	assignment.csv   paper,reviewer,action                     (action: <type>review)
//	preferences.csv  paper,reviewer,preference[,topic_score,conflict]
//
// An empty score or bid cell reads as NaN (unscored, default bid). A
// conflict cell reading "conflict" or "true" marks the preference as
// conflicted.
//
// LoadDir assembles assign.Tables from a directory; optional files that do
// not exist come back as nil slices so the builder takes its degraded path.
package tables
