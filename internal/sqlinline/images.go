package sqlinline

const QListPublishedImages = `--sql 6714aad5-6747-4526-9a74-80ebf0d922ec
select id, image_url, prompt, hearts, created_at
from published_images
order by created_at desc, id desc
offset $1::bigint
limit $2::bigint;
`

const QCountPublishedImages = `--sql 3bec2083-f026-4c66-ad43-d9e1e0f723ad
select count(*) from published_images;
`

const QSelectPublishedImage = `--sql 24207243-c0fc-4bd8-9230-cfb94bb2d929
select id, image_url, prompt, hearts, created_at
from published_images
where id = $1::bigint;
`

const QSetImageHearts = `--sql 15875790-cf1d-46dc-8575-adf6a9b0cab9
update published_images
set hearts = $2::bigint
where id = $1::bigint
returning id, image_url, prompt, hearts, created_at;
`

const QInsertPublishedImage = `--sql 40b8bb76-7642-4705-9aef-1443dd22c71d
insert into published_images(image_url, prompt)
values ($1::text, $2::text)
returning id, image_url, prompt, hearts, created_at;
`
