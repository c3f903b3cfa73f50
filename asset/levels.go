package asset

// DefaultLevels is the built-in level table, used when no levels file is found
// Coordinates are playfield cells; y grows toward the player
const DefaultLevels = `
# === Level 1: a single picket line ===
[[level]]
name = "Picket Line"
ranks = 2
slots_per_rank = 6
fill_rule = "behind"
formation_speed = 3.0
formation_origin = [40.0, 12.0]
slot_spacing = [6.0, 3.0]
breakout_interval = "5s"
attack_chance = 0.2

# === Level 2: diagonal refill and the first well ===
[[level]]
name = "Event Horizon"
ranks = 3
slots_per_rank = 7
fill_rule = "behind-diagonal"
formation_speed = 4.0
formation_origin = [40.0, 14.0]
slot_spacing = [5.0, 3.0]
breakout_interval = "4s"
attack_chance = 0.3

[[level.well]]
position = [40.0, 26.0]
strength = 18.0
radius = 20.0

[[level.spawn]]
at = "8s"
count = 2

# === Level 3: hand-wired refill lanes, twin drifting wells ===
[[level]]
name = "Binary"
ranks = 4
slots_per_rank = 8
fill_rule = "table"
formation_speed = 5.0
formation_origin = [40.0, 15.0]
slot_spacing = [5.0, 2.5]
breakout_interval = "3s"
attack_chance = 0.35

# Outer lanes pull inward; inner lanes refill straight back
[[level.fill]]
slot = [0, 0]
from = [[1, 0], [1, 1]]
[[level.fill]]
slot = [0, 7]
from = [[1, 7], [1, 6]]
[[level.fill]]
slot = [0, 3]
from = [[1, 3], [2, 3]]
[[level.fill]]
slot = [0, 4]
from = [[1, 4], [2, 4]]
[[level.fill]]
slot = [1, 0]
from = [[2, 0]]
[[level.fill]]
slot = [1, 7]
from = [[2, 7]]
[[level.fill]]
slot = [2, 0]
from = [[3, 0], [3, 1]]
[[level.fill]]
slot = [2, 7]
from = [[3, 7], [3, 6]]

[[level.well]]
position = [20.0, 28.0]
velocity = [2.0, 0.0]
strength = 14.0
radius = 16.0

[[level.well]]
position = [60.0, 28.0]
velocity = [-2.0, 0.0]
strength = 14.0
radius = 16.0
lifetime = "40s"

[[level.spawn]]
at = "6s"
count = 2

[[level.spawn]]
at = "14s"
count = 3
`
