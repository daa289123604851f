package tile

// Material is the closed set of substances a cell can hold.
type Material uint8

const (
	MatAir Material = iota
	MatSoil
	MatGrass // grass-topped soil
	MatStone
	MatCopperOre
	MatIronOre
	MatGoldOre
	MatWood
	MatWoodWall
	MatBrick
	MatTrunk
	MatLeaves

	materialCount
)

var materialNames = [materialCount]string{
	"AIR", "SOIL", "GRASS", "STONE",
	"COPPER_ORE", "IRON_ORE", "GOLD_ORE",
	"WOOD", "WOOD_WALL", "BRICK",
	"TRUNK", "LEAVES",
}

func (m Material) String() string {
	if int(m) < len(materialNames) {
		return materialNames[m]
	}
	return "UNKNOWN"
}

// MaterialFromName resolves a wire-format material name.
func MaterialFromName(name string) (Material, bool) {
	for i, n := range materialNames {
		if n == name {
			return Material(i), true
		}
	}
	return MatAir, false
}

// IsSolid reports whether an active cell of this material blocks movement.
// Trunks and foliage are passable so trees never wall off the surface.
func IsSolid(m Material) bool {
	switch m {
	case MatAir, MatTrunk, MatLeaves:
		return false
	default:
		return true
	}
}

// IsOre reports whether the material is one of the three ore grades.
func IsOre(m Material) bool {
	return m == MatCopperOre || m == MatIronOre || m == MatGoldOre
}

// DropItem maps a mined material to the inventory item it yields.
// Grass drops soil; foliage drops nothing.
func DropItem(m Material) string {
	switch m {
	case MatSoil, MatGrass:
		return "SOIL"
	case MatStone:
		return "STONE"
	case MatCopperOre:
		return "COPPER_ORE"
	case MatIronOre:
		return "IRON_ORE"
	case MatGoldOre:
		return "GOLD_ORE"
	case MatWood, MatWoodWall, MatTrunk:
		return "WOOD"
	case MatBrick:
		return "BRICK"
	default:
		return ""
	}
}
