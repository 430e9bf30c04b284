package brainstorm

import (
	"fmt"
	"strings"
	"time"

	"github.com/namestorm/server/internal/domain/domaincheck"
)

// ComposeSummary renders the final assistant text for one loop run: the list
// of found domains, an apology footer when fewer than requested were found,
// and a distinct safety-limit message when nothing was found at all.
func ComposeSummary(found []domaincheck.Result, requested int, rounds int, elapsed time.Duration, french bool) string {
	if len(found) == 0 {
		if french {
			return fmt.Sprintf(
				"Je n'ai trouvé aucun domaine disponible avant d'atteindre la limite de sécurité (%d tours, %s). Essayez de relancer la recherche ou d'assouplir la contrainte d'extension.",
				rounds, elapsed.Round(time.Second))
		}
		return fmt.Sprintf(
			"I could not find any available domain before hitting the safety limit (%d rounds, %s). Try running the search again or loosening the TLD constraint.",
			rounds, elapsed.Round(time.Second))
	}

	var b strings.Builder
	if french {
		if len(found) == 1 {
			b.WriteString("Voici un domaine disponible :\n")
		} else {
			fmt.Fprintf(&b, "Voici %d domaines disponibles :\n", len(found))
		}
	} else {
		if len(found) == 1 {
			b.WriteString("Here is an available domain:\n")
		} else {
			fmt.Fprintf(&b, "Here are %d available domains:\n", len(found))
		}
	}

	for _, r := range found {
		fmt.Fprintf(&b, "- %s\n", r.Domain)
	}

	if len(found) < requested {
		if french {
			fmt.Fprintf(&b,
				"\nDésolé, je n'ai trouvé que %d domaine(s) sur les %d demandés. Demandez-moi de continuer ou essayez une autre extension.",
				len(found), requested)
		} else {
			fmt.Fprintf(&b,
				"\nSorry, I only found %d of the %d domains you asked for. Ask me to keep going or try a different TLD.",
				len(found), requested)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
