package database

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vidtube/internal/logger"
)

// EnsureDatabaseAndCollections đảm bảo các collection cần thiết tồn tại trong database.
// Database được MongoDB tạo tự động khi collection đầu tiên được tạo.
func EnsureDatabaseAndCollections(client *mongo.Client, dbName string, collections []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(dbName)
	collList, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	existing := make(map[string]bool, len(collList))
	for _, name := range collList {
		existing[name] = true
	}

	for _, collectionName := range collections {
		if collectionName == "" || existing[collectionName] {
			continue
		}
		logger.GetAppLogger().Infof("Collection %s chưa tồn tại, tạo mới.", collectionName)
		if err := db.CreateCollection(ctx, collectionName); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", collectionName, err)
		}
	}

	logger.GetAppLogger().Infof("Database and collections are ensured in database: %s", dbName)
	return nil
}

// IndexSpec mô tả một index sinh ra từ tag `index` của model
type IndexSpec struct {
	Name    string
	Keys    bson.D
	Options *options.IndexOptions
}

// parseIndexTag tách tag index: ';' ngăn các cấu hình, ',' ngăn các cặp key:value
//
//	index:"single:-1"
//	index:"unique"
//	index:"single:1;compound:like_video_user_unique"
//	index:"compound:like_video_user_unique,partial:video"
func parseIndexTag(tag string) []map[string]string {
	result := []map[string]string{}
	for _, part := range strings.Split(tag, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		entry := map[string]string{}
		for _, subPart := range strings.Split(part, ",") {
			kv := strings.SplitN(strings.TrimSpace(subPart), ":", 2)
			if len(kv) == 2 {
				entry[kv[0]] = kv[1]
			} else {
				entry[kv[0]] = ""
			}
		}
		result = append(result, entry)
	}
	return result
}

// parseOrder lấy thứ tự sắp xếp (1 hoặc -1) từ "order:-1" hoặc giá trị của key chính
func parseOrder(config map[string]string, key string) int {
	if config["order"] == "-1" || config[key] == "-1" {
		return -1
	}
	return 1
}

// bsonFieldName lấy tên field từ bson tag, bỏ các option như omitempty
func bsonFieldName(field reflect.StructField) string {
	name := strings.Split(field.Tag.Get("bson"), ",")[0]
	if name == "-" {
		return ""
	}
	return name
}

// BuildIndexSpecs đọc tag `index` trên model và trả về danh sách index cần có.
// Compound group có "_unique" trong tên là unique; "partial:<field>" tạo
// partialFilterExpression {<field>: {$exists: true}} cho group đó.
func BuildIndexSpecs(model interface{}) ([]IndexSpec, error) {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	var specs []IndexSpec
	compoundOrder := []string{}
	compoundKeys := map[string]bson.D{}
	compoundSparse := map[string]bool{}
	compoundPartial := map[string]bson.M{}

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		bsonField := bsonFieldName(field)
		if bsonField == "" {
			continue
		}

		for _, config := range parseIndexTag(tag) {
			if _, ok := config["text"]; ok {
				name := bsonField + "_text"
				specs = append(specs, IndexSpec{Name: name, Keys: bson.D{{Key: bsonField, Value: "text"}}, Options: options.Index().SetName(name)})
			}

			if _, ok := config["single"]; ok {
				name := bsonField + "_single"
				specs = append(specs, IndexSpec{Name: name, Keys: bson.D{{Key: bsonField, Value: parseOrder(config, "single")}}, Options: options.Index().SetName(name)})
			}

			if _, ok := config["unique"]; ok {
				name := bsonField + "_unique"
				opts := options.Index().SetName(name).SetUnique(true)
				if _, hasSparse := config["sparse"]; hasSparse {
					opts = opts.SetSparse(true)
				}
				specs = append(specs, IndexSpec{Name: name, Keys: bson.D{{Key: bsonField, Value: 1}}, Options: opts})
			}

			if ttlValue, ok := config["ttl"]; ok {
				ttl, err := strconv.Atoi(ttlValue)
				if err != nil {
					return nil, fmt.Errorf("TTL không hợp lệ ở field %s: %w", bsonField, err)
				}
				name := bsonField + "_ttl"
				specs = append(specs, IndexSpec{Name: name, Keys: bson.D{{Key: bsonField, Value: 1}}, Options: options.Index().SetName(name).SetExpireAfterSeconds(int32(ttl))})
			}

			if groupName, ok := config["compound"]; ok && groupName != "" {
				if _, seen := compoundKeys[groupName]; !seen {
					compoundOrder = append(compoundOrder, groupName)
				}
				compoundKeys[groupName] = append(compoundKeys[groupName], bson.E{Key: bsonField, Value: parseOrder(config, "compound")})
				if _, hasSparse := config["sparse"]; hasSparse {
					compoundSparse[groupName] = true
				}
				if partialField, hasPartial := config["partial"]; hasPartial && partialField != "" {
					if compoundPartial[groupName] == nil {
						compoundPartial[groupName] = bson.M{}
					}
					compoundPartial[groupName][partialField] = bson.M{"$exists": true}
				}
			}
		}
	}

	for _, groupName := range compoundOrder {
		opts := options.Index().SetName(groupName)
		if strings.Contains(groupName, "_unique") {
			opts = opts.SetUnique(true)
		}
		if compoundSparse[groupName] {
			opts = opts.SetSparse(true)
		}
		if partial, ok := compoundPartial[groupName]; ok {
			opts = opts.SetPartialFilterExpression(partial)
		}
		specs = append(specs, IndexSpec{Name: groupName, Keys: compoundKeys[groupName], Options: opts})
	}

	return specs, nil
}

// toInt chuyển giá trị số trong bson về int
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// compareIndex so sánh index đang có với cấu hình mới (keys, unique, ttl, partial)
func compareIndex(existingIndex bson.M, keys bson.D, opts *options.IndexOptions) bool {
	existingKeys, ok := existingIndex["key"].(bson.M)
	if !ok || len(existingKeys) != len(keys) {
		return false
	}

	for _, key := range keys {
		existingValue, exists := existingKeys[key.Key]
		if !exists {
			return false
		}
		if newVal, isInt := key.Value.(int); isInt {
			ev, ok := toInt(existingValue)
			if !ok || ev != newVal {
				return false
			}
		} else if existingValue != key.Value {
			return false
		}
	}

	unique, _ := existingIndex["unique"].(bool)
	wantUnique := opts.Unique != nil && *opts.Unique
	if unique != wantUnique {
		return false
	}

	if opts.ExpireAfterSeconds != nil {
		ttl, ok := toInt(existingIndex["expireAfterSeconds"])
		if !ok || ttl != int(*opts.ExpireAfterSeconds) {
			return false
		}
	}

	_, hasPartial := existingIndex["partialFilterExpression"]
	if hasPartial != (opts.PartialFilterExpression != nil) {
		return false
	}

	return true
}

// checkAndReplaceIndex tạo index, hoặc drop rồi tạo lại nếu cấu hình đã thay đổi
func checkAndReplaceIndex(ctx context.Context, collection *mongo.Collection, existingIndexes map[string]bson.M, spec IndexSpec) error {
	log := logger.WithModule("database").WithField("collection", collection.Name())

	if existingIndex, exists := existingIndexes[spec.Name]; exists {
		if compareIndex(existingIndex, spec.Keys, spec.Options) {
			log.Debugf("Index %s đã tồn tại và đúng cấu hình, bỏ qua", spec.Name)
			return nil
		}
		if _, err := collection.Indexes().DropOne(ctx, spec.Name); err != nil {
			return fmt.Errorf("không thể xóa index %s: %w", spec.Name, err)
		}
		log.Infof("Đã xóa index cũ: %s", spec.Name)
	}

	if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: spec.Keys, Options: spec.Options}); err != nil {
		return fmt.Errorf("không thể tạo index %s: %w", spec.Name, err)
	}
	log.Infof("Đã tạo index: %s", spec.Name)
	return nil
}

// CreateIndexes tạo các index khai báo bằng tag `index` trên model cho collection
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	specs, err := BuildIndexSpecs(model)
	if err != nil {
		return err
	}

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("không thể lấy danh sách index: %w", err)
	}
	defer cursor.Close(ctx)

	existingIndexes := map[string]bson.M{}
	for cursor.Next(ctx) {
		var indexInfo bson.M
		if err := cursor.Decode(&indexInfo); err != nil {
			return fmt.Errorf("không thể giải mã thông tin index: %w", err)
		}
		if name, ok := indexInfo["name"].(string); ok {
			existingIndexes[name] = indexInfo
		}
	}

	for _, spec := range specs {
		if err := checkAndReplaceIndex(ctx, collection, existingIndexes, spec); err != nil {
			return err
		}
	}
	return nil
}
