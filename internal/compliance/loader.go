package compliance

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"codecopilot/internal/service"
)

// openCSV opens path and returns a reader over its records plus the header
// column index. Missing files surface as service.ErrNotFound with the path.
func openCSV(path string) (*os.File, *csv.Reader, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil, fmt.Errorf("%w: %s", service.ErrNotFound, path)
		}
		return nil, nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		_ = f.Close()
		return nil, nil, nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	return f, reader, columns, nil
}

// field returns the trimmed value of the named column, or an error when the
// column is absent.
func field(record []string, columns map[string]int, name string) (string, error) {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return "", fmt.Errorf("missing column %q", name)
	}
	return strings.TrimSpace(record[i]), nil
}

// LoadRooms loads rooms from a CSV file with columns
// id,name,type,level,area_m2. Malformed rows surface as RowError with the
// file and 1-based row number (the header is row 1).
func LoadRooms(path string) ([]Room, error) {
	f, reader, columns, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var rooms []Room
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &service.RowError{File: path, Row: row, Err: err}
		}

		room, err := parseRoom(record, columns)
		if err != nil {
			return nil, &service.RowError{File: path, Row: row, Err: err}
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func parseRoom(record []string, columns map[string]int) (Room, error) {
	id, err := field(record, columns, "id")
	if err != nil {
		return Room{}, err
	}
	name, err := field(record, columns, "name")
	if err != nil {
		return Room{}, err
	}
	roomType, err := field(record, columns, "type")
	if err != nil {
		return Room{}, err
	}
	levelStr, err := field(record, columns, "level")
	if err != nil {
		return Room{}, err
	}
	areaStr, err := field(record, columns, "area_m2")
	if err != nil {
		return Room{}, err
	}

	level, err := strconv.Atoi(levelStr)
	if err != nil {
		return Room{}, fmt.Errorf("invalid level %q: %w", levelStr, err)
	}
	if level < 1 {
		return Room{}, fmt.Errorf("level must be at least 1, got %d", level)
	}

	area, err := strconv.ParseFloat(areaStr, 64)
	if err != nil {
		return Room{}, fmt.Errorf("invalid area_m2 %q: %w", areaStr, err)
	}
	if area <= 0 {
		return Room{}, fmt.Errorf("area_m2 must be positive, got %v", area)
	}

	return Room{ID: id, Name: name, Type: roomType, Level: level, AreaM2: area}, nil
}

// LoadDoors loads doors from a CSV file with columns
// id,location_room_id,clear_width_mm,level. When roomIDs is non-nil, each
// door's room reference is validated against it.
func LoadDoors(path string, roomIDs map[string]struct{}) ([]Door, error) {
	f, reader, columns, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var doors []Door
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &service.RowError{File: path, Row: row, Err: err}
		}

		door, err := parseDoor(record, columns)
		if err != nil {
			return nil, &service.RowError{File: path, Row: row, Err: err}
		}

		if roomIDs != nil {
			if _, ok := roomIDs[door.LocationRoomID]; !ok {
				return nil, &service.RowError{
					File: path,
					Row:  row,
					Err:  fmt.Errorf("door %q references non-existent room %q", door.ID, door.LocationRoomID),
				}
			}
		}
		doors = append(doors, door)
	}
	return doors, nil
}

func parseDoor(record []string, columns map[string]int) (Door, error) {
	id, err := field(record, columns, "id")
	if err != nil {
		return Door{}, err
	}
	roomID, err := field(record, columns, "location_room_id")
	if err != nil {
		return Door{}, err
	}
	widthStr, err := field(record, columns, "clear_width_mm")
	if err != nil {
		return Door{}, err
	}
	levelStr, err := field(record, columns, "level")
	if err != nil {
		return Door{}, err
	}

	width, err := strconv.ParseFloat(widthStr, 64)
	if err != nil {
		return Door{}, fmt.Errorf("invalid clear_width_mm %q: %w", widthStr, err)
	}
	if width <= 0 {
		return Door{}, fmt.Errorf("clear_width_mm must be positive, got %v", width)
	}

	level, err := strconv.Atoi(levelStr)
	if err != nil {
		return Door{}, fmt.Errorf("invalid level %q: %w", levelStr, err)
	}
	if level < 1 {
		return Door{}, fmt.Errorf("level must be at least 1, got %d", level)
	}

	return Door{ID: id, LocationRoomID: roomID, ClearWidthMM: width, Level: level}, nil
}

// LoadDesign loads rooms and doors together, validating that every door
// references a loaded room.
func LoadDesign(roomsPath, doorsPath string) ([]Room, []Door, error) {
	rooms, err := LoadRooms(roomsPath)
	if err != nil {
		return nil, nil, err
	}

	roomIDs := make(map[string]struct{}, len(rooms))
	for _, room := range rooms {
		roomIDs[room.ID] = struct{}{}
	}

	doors, err := LoadDoors(doorsPath, roomIDs)
	if err != nil {
		return nil, nil, err
	}
	return rooms, doors, nil
}
