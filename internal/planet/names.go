package planet

import (
	"fmt"
)

var nameStems = []string{
	"Abacus", "Altair", "Arcturus", "Ares", "Bellatrix", "Bootes", "Caelum", "Capella",
	"Carina", "Castor", "Cygnus", "Deneb", "Draco", "Eridani", "Forge", "Fomalhaut",
	"Gemma", "Hadar", "Hydra", "Izar", "Kepler", "Kochab", "Lyra", "Markab",
	"Meridian", "Mira", "Mizar", "Naos", "Nyx", "Obsidian", "Orion", "Pavo",
	"Pollux", "Procyon", "Rasalas", "Regulus", "Rigel", "Sabik", "Sadr", "Scheat",
	"Shaula", "Sirius", "Solis", "Spica", "Tarazed", "Tempest", "Thuban", "Umbra",
	"Unukalhai", "Vega", "Vindemiatrix", "Wasat", "Wezen", "Yildun", "Zaurak", "Zenith",
	"Zosma", "Alcor", "Ankaa", "Atria",
}

var nameQualifiers = []string{
	"", "Prime", "Minor", "Major", "II", "III", "IV", "V", "VI", "VII",
	"Beta", "Gamma", "Delta", "Epsilon", "Zeta", "Theta", "Kappa", "Sigma", "Tau", "Omega",
}

// Names returns n distinct planet names in an order determined by rng.
func Names(rng Rand, n int) []string {
	pool := make([]string, 0, len(nameStems)*len(nameQualifiers))
	for _, q := range nameQualifiers {
		for _, stem := range nameStems {
			if q == "" {
				pool = append(pool, stem)
			} else {
				pool = append(pool, stem+" "+q)
			}
		}
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	names := make([]string, n)
	for i := range names {
		base := pool[i%len(pool)]
		if round := i / len(pool); round > 0 {
			base = fmt.Sprintf("%s-%d", base, round+1)
		}
		names[i] = base
	}
	return names
}
