package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"campusbites_back_end/internal/models"
)

const menuIndexName = "menu_items"

// MenuIndex maintient l'index Elasticsearch des articles de menu.
// Tolère un client nil (déploiement sans Elastic) : l'indexation devient
// silencieusement un no-op et la recherche renvoie une erreur explicite.
type MenuIndex struct {
	client *elasticsearch.Client
}

func NewMenuIndex(client *elasticsearch.Client) *MenuIndex {
	return &MenuIndex{client: client}
}

// IndexItem indexe un article (appelé en goroutine après création/màj)
func (m *MenuIndex) IndexItem(item models.MenuItem) {
	if m.client == nil {
		return
	}

	data, _ := json.Marshal(item)
	req := esapi.IndexRequest{
		Index:      menuIndexName,
		DocumentID: item.ID.Hex(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), m.client)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", item.Name, res.String())
	} else {
		log.Printf("✅ Article indexé dans Elasticsearch: %s", item.Name)
	}
}

// RemoveItem retire un article supprimé de l'index
func (m *MenuIndex) RemoveItem(id string) {
	if m.client == nil {
		return
	}

	req := esapi.DeleteRequest{Index: menuIndexName, DocumentID: id}
	res, err := req.Do(context.Background(), m.client)
	if err != nil {
		log.Println("❌ Erreur suppression Elastic:", err)
		return
	}
	res.Body.Close()
}

// Search cherche par nom, description ou catégorie
func (m *MenuIndex) Search(query string) ([]map[string]interface{}, error) {
	if m.client == nil {
		return nil, errors.New("client Elasticsearch non initialisé")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name", "description", "category"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{menuIndexName},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), m.client)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		var e map[string]interface{}
		json.NewDecoder(res.Body).Decode(&e)
		log.Printf("❌ Elasticsearch erreur: %+v", e)
		return nil, errors.New("index non trouvé ou vide")
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("erreur décodage JSON: %v", err)
	}

	hitsData, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, errors.New("réponse Elastic invalide (pas de hits)")
	}
	hitsArray, ok := hitsData["hits"].([]interface{})
	if !ok {
		return nil, errors.New("aucun résultat trouvé")
	}

	results := make([]map[string]interface{}, 0, len(hitsArray))
	for _, hit := range hitsArray {
		hitMap, _ := hit.(map[string]interface{})
		if source, ok := hitMap["_source"].(map[string]interface{}); ok {
			results = append(results, source)
		}
	}

	return results, nil
}
